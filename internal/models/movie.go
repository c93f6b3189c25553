package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie is read only here; the catalogue is maintained elsewhere.
type Movie struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Language      string             `bson:"language,omitempty" json:"language,omitempty"`
	Director      string             `bson:"director,omitempty" json:"director,omitempty"`
	ReleaseStatus string             `bson:"releaseStatus,omitempty" json:"releaseStatus,omitempty"`
	ReleaseDate   *time.Time         `bson:"releaseDate,omitempty" json:"releaseDate,omitempty"`
}

type MovieRepo interface {
	GetMoviesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Movie, error)
}

func (mdb *MongodbRepo) GetMoviesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Movie, error) {
	if len(ids) == 0 {
		return []*Movie{}, nil
	}
	col, err := mdb.GetCollection(MoviesCollection)
	if err != nil {
		return nil, err
	}
	cur, err := col.Find(ctx, bsonIn("_id", ids))
	if err != nil {
		return nil, storeErr("find movies", err)
	}
	return decodeAll[Movie](ctx, cur)
}

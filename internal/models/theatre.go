package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTheatrePageSize is the page size used to turn a page index into an
// offset when the caller gives skip without limit.
const DefaultTheatrePageSize = 3

type Theatre struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name" validate:"required"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	City        string               `bson:"city" json:"city" validate:"required"`
	Pincode     int                  `bson:"pincode" json:"pincode" validate:"required"`
	Address     string               `bson:"address,omitempty" json:"address,omitempty"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Movies      []primitive.ObjectID `bson:"movies" json:"movies"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (t *Theatre) HasMovie(movieID primitive.ObjectID) bool {
	for _, m := range t.Movies {
		if m == movieID {
			return true
		}
	}
	return false
}

// TheatreUpdate is a partial update; nil fields are left alone.
type TheatreUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	City        *string `json:"city" validate:"omitempty,min=1"`
	Pincode     *int    `json:"pincode" validate:"omitempty,min=1"`
	Address     *string `json:"address"`
}

func (u TheatreUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.City == nil && u.Pincode == nil && u.Address == nil
}

// TheatreFilter narrows ListTheatres. Zero values mean no constraint; Skip is
// a record offset already resolved from the page index.
type TheatreFilter struct {
	City     string
	Pincode  int
	Name     string
	MovieIDs []primitive.ObjectID
	Limit    int64
	Skip     int64
}

// TheatrePage resolves limit and a page index into the filter's Limit and
// Skip. skip is a page number, so the offset is skip * (limit or the default
// page size). No limit is applied when limit is zero.
func TheatrePage(limit, skip int64) (int64, int64) {
	var outLimit, outSkip int64
	if limit > 0 {
		outLimit = limit
	}
	if skip > 0 {
		perPage := int64(DefaultTheatrePageSize)
		if limit > 0 {
			perPage = limit
		}
		outSkip = skip * perPage
	}
	return outLimit, outSkip
}

type TheatreRepo interface {
	CreateTheatre(ctx context.Context, theatre *Theatre) (*Theatre, error)
	GetTheatreByID(ctx context.Context, id primitive.ObjectID) (*Theatre, error)
	ListTheatres(ctx context.Context, filter TheatreFilter) ([]*Theatre, error)
	UpdateTheatre(ctx context.Context, id primitive.ObjectID, update TheatreUpdate) (*Theatre, error)
	DeleteTheatre(ctx context.Context, id primitive.ObjectID) (*Theatre, error)
	AddMovies(ctx context.Context, id primitive.ObjectID, movieIDs []primitive.ObjectID) (*Theatre, error)
	RemoveMovies(ctx context.Context, id primitive.ObjectID, movieIDs []primitive.ObjectID) (*Theatre, error)
}

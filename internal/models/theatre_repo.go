package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) CreateTheatre(ctx context.Context, theatre *Theatre) (*Theatre, error) {
	col, err := mdb.GetCollection(TheatresCollection)
	if err != nil {
		return nil, err
	}
	if theatre.ID.IsZero() {
		theatre.ID = primitive.NewObjectID()
	}
	if theatre.Movies == nil {
		theatre.Movies = []primitive.ObjectID{}
	}
	if _, err := col.InsertOne(ctx, theatre); err != nil {
		return nil, storeErr("insert theatre", err)
	}
	return theatre, nil
}

func (mdb *MongodbRepo) GetTheatreByID(ctx context.Context, id primitive.ObjectID) (*Theatre, error) {
	col, err := mdb.GetCollection(TheatresCollection)
	if err != nil {
		return nil, err
	}
	var theatre Theatre
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&theatre); err != nil {
		return nil, storeErr("find theatre", err)
	}
	return &theatre, nil
}

// theatreQuery builds the Mongo filter for ListTheatres.
func theatreQuery(filter TheatreFilter) bson.M {
	query := bson.M{}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.Pincode != 0 {
		query["pincode"] = filter.Pincode
	}
	if filter.Name != "" {
		query["name"] = filter.Name
	}
	if len(filter.MovieIDs) > 0 {
		query["movies"] = bson.M{"$all": filter.MovieIDs}
	}
	return query
}

func (mdb *MongodbRepo) ListTheatres(ctx context.Context, filter TheatreFilter) ([]*Theatre, error) {
	col, err := mdb.GetCollection(TheatresCollection)
	if err != nil {
		return nil, err
	}
	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	if filter.Skip > 0 {
		opts.SetSkip(filter.Skip)
	}
	cur, err := col.Find(ctx, theatreQuery(filter), opts)
	if err != nil {
		return nil, storeErr("list theatres", err)
	}
	return decodeAll[Theatre](ctx, cur)
}

// UpdateTheatre applies the non nil fields. An empty update only reads the
// theatre back.
func (mdb *MongodbRepo) UpdateTheatre(ctx context.Context, id primitive.ObjectID, update TheatreUpdate) (*Theatre, error) {
	if update.IsEmpty() {
		return mdb.GetTheatreByID(ctx, id)
	}
	col, err := mdb.GetCollection(TheatresCollection)
	if err != nil {
		return nil, err
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.City != nil {
		set["city"] = *update.City
	}
	if update.Pincode != nil {
		set["pincode"] = *update.Pincode
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	var theatre Theatre
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, returnAfter()).Decode(&theatre); err != nil {
		return nil, storeErr("update theatre", err)
	}
	return &theatre, nil
}

func (mdb *MongodbRepo) DeleteTheatre(ctx context.Context, id primitive.ObjectID) (*Theatre, error) {
	col, err := mdb.GetCollection(TheatresCollection)
	if err != nil {
		return nil, err
	}
	var theatre Theatre
	if err := col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&theatre); err != nil {
		return nil, storeErr("delete theatre", err)
	}
	return &theatre, nil
}

// AddMovies relies on $addToSet so repeated calls never duplicate a movie.
func (mdb *MongodbRepo) AddMovies(ctx context.Context, id primitive.ObjectID, movieIDs []primitive.ObjectID) (*Theatre, error) {
	update := bson.M{
		"$addToSet": bson.M{"movies": bson.M{"$each": movieIDs}},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	return mdb.updateMovies(ctx, id, update)
}

func (mdb *MongodbRepo) RemoveMovies(ctx context.Context, id primitive.ObjectID, movieIDs []primitive.ObjectID) (*Theatre, error) {
	update := bson.M{
		"$pull": bson.M{"movies": bson.M{"$in": movieIDs}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return mdb.updateMovies(ctx, id, update)
}

func (mdb *MongodbRepo) updateMovies(ctx context.Context, id primitive.ObjectID, update bson.M) (*Theatre, error) {
	col, err := mdb.GetCollection(TheatresCollection)
	if err != nil {
		return nil, err
	}
	var theatre Theatre
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, returnAfter()).Decode(&theatre); err != nil {
		return nil, storeErr("update theatre movies", err)
	}
	return &theatre, nil
}

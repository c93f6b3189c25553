package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) CreateShow(ctx context.Context, show *Show) (*Show, error) {
	col, err := mdb.GetCollection(ShowsCollection)
	if err != nil {
		return nil, err
	}
	if show.ID.IsZero() {
		show.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, show); err != nil {
		return nil, storeErr("insert show", err)
	}
	return show, nil
}

func (mdb *MongodbRepo) GetShowByID(ctx context.Context, id primitive.ObjectID) (*Show, error) {
	return mdb.findShow(ctx, bson.M{"_id": id})
}

func (mdb *MongodbRepo) FindShow(ctx context.Context, id, theatreID, movieID primitive.ObjectID) (*Show, error) {
	return mdb.findShow(ctx, bson.M{"_id": id, "theatreId": theatreID, "movieId": movieID})
}

func (mdb *MongodbRepo) findShow(ctx context.Context, filter bson.M) (*Show, error) {
	col, err := mdb.GetCollection(ShowsCollection)
	if err != nil {
		return nil, err
	}
	var show Show
	if err := col.FindOne(ctx, filter).Decode(&show); err != nil {
		return nil, storeErr("find show", err)
	}
	return &show, nil
}

func showQuery(filter ShowFilter) bson.M {
	query := bson.M{}
	if !filter.TheatreID.IsZero() {
		query["theatreId"] = filter.TheatreID
	}
	if !filter.MovieID.IsZero() {
		query["movieId"] = filter.MovieID
	}
	return query
}

func (mdb *MongodbRepo) ListShows(ctx context.Context, filter ShowFilter) ([]*Show, error) {
	col, err := mdb.GetCollection(ShowsCollection)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "timing", Value: 1}})
	cur, err := col.Find(ctx, showQuery(filter), opts)
	if err != nil {
		return nil, storeErr("list shows", err)
	}
	return decodeAll[Show](ctx, cur)
}

func (mdb *MongodbRepo) UpdateShow(ctx context.Context, id primitive.ObjectID, update ShowUpdate) (*Show, error) {
	col, err := mdb.GetCollection(ShowsCollection)
	if err != nil {
		return nil, err
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Timing != nil {
		set["timing"] = update.Timing.UTC()
	}
	if update.NoOfSeats != nil {
		set["noOfSeats"] = *update.NoOfSeats
	}
	if update.SeatConfiguration != nil {
		set["seatConfiguration"] = *update.SeatConfiguration
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Format != nil {
		set["format"] = *update.Format
	}
	var show Show
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, returnAfter()).Decode(&show); err != nil {
		return nil, storeErr("update show", err)
	}
	return &show, nil
}

func (mdb *MongodbRepo) DeleteShow(ctx context.Context, id primitive.ObjectID) (*Show, error) {
	col, err := mdb.GetCollection(ShowsCollection)
	if err != nil {
		return nil, err
	}
	var show Show
	if err := col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&show); err != nil {
		return nil, storeErr("delete show", err)
	}
	return &show, nil
}

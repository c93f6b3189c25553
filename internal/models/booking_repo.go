package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	col, err := mdb.GetCollection(BookingsCollection)
	if err != nil {
		return nil, err
	}
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, booking); err != nil {
		return nil, storeErr("insert booking", err)
	}
	return booking, nil
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	col, err := mdb.GetCollection(BookingsCollection)
	if err != nil {
		return nil, err
	}
	var booking Booking
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		return nil, storeErr("find booking", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) ListBookings(ctx context.Context, userID primitive.ObjectID) ([]*Booking, error) {
	col, err := mdb.GetCollection(BookingsCollection)
	if err != nil {
		return nil, err
	}
	filter := bson.M{}
	if !userID.IsZero() {
		filter["userId"] = userID
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list bookings", err)
	}
	return decodeAll[Booking](ctx, cur)
}

func (mdb *MongodbRepo) UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status string) (*Booking, error) {
	col, err := mdb.GetCollection(BookingsCollection)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	var booking Booking
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, returnAfter()).Decode(&booking); err != nil {
		return nil, storeErr("update booking", err)
	}
	return &booking, nil
}

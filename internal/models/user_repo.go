package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	col, err := mdb.GetCollection(UsersCollection)
	if err != nil {
		return nil, err
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, user); err != nil {
		return nil, storeErr("insert user", err)
	}
	return user, nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	col, err := mdb.GetCollection(UsersCollection)
	if err != nil {
		return nil, err
	}
	var user User
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, storeErr("find user by id", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	col, err := mdb.GetCollection(UsersCollection)
	if err != nil {
		return nil, err
	}
	var user User
	if err := col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, storeErr("find user by email", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) UpdateUser(ctx context.Context, id primitive.ObjectID, update UserUpdate) (*User, error) {
	col, err := mdb.GetCollection(UsersCollection)
	if err != nil {
		return nil, err
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.UserRole != nil {
		set["userRole"] = *update.UserRole
	}
	if update.UserStatus != nil {
		set["userStatus"] = *update.UserStatus
	}
	var user User
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, returnAfter()).Decode(&user)
	if err != nil {
		return nil, storeErr("update user", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) (*User, error) {
	col, err := mdb.GetCollection(UsersCollection)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{"password": hash, "updatedAt": time.Now().UTC()}}
	var user User
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, returnAfter()).Decode(&user); err != nil {
		return nil, storeErr("update password", err)
	}
	return &user, nil
}

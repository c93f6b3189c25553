package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	Format2D   = "2D"
	Format3D   = "3D"
	FormatIMAX = "IMAX"
	Format4DX  = "4DX"
)

// Show is a screening of a movie in a theatre. (theatreId, movieId, timing)
// is unique and the theatre/movie references never change after creation.
type Show struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TheatreID         primitive.ObjectID `bson:"theatreId" json:"theatreId" validate:"required"`
	MovieID           primitive.ObjectID `bson:"movieId" json:"movieId" validate:"required"`
	Timing            time.Time          `bson:"timing" json:"timing" validate:"required"`
	NoOfSeats         int                `bson:"noOfSeats" json:"noOfSeats" validate:"min=1"`
	SeatConfiguration *string            `bson:"seatConfiguration" json:"seatConfiguration"`
	Price             float64            `bson:"price" json:"price" validate:"gte=0"`
	Format            string             `bson:"format" json:"format" validate:"oneof=2D 3D IMAX 4DX"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ShowUpdate lists the mutable fields of a show.
type ShowUpdate struct {
	Timing            *time.Time `json:"timing"`
	NoOfSeats         *int       `json:"noOfSeats" validate:"omitempty,min=1"`
	SeatConfiguration *string    `json:"seatConfiguration"`
	Price             *float64   `json:"price" validate:"omitempty,gte=0"`
	Format            *string    `json:"format" validate:"omitempty,oneof=2D 3D IMAX 4DX"`
}

type ShowFilter struct {
	TheatreID primitive.ObjectID
	MovieID   primitive.ObjectID
}

type ShowRepo interface {
	CreateShow(ctx context.Context, show *Show) (*Show, error)
	GetShowByID(ctx context.Context, id primitive.ObjectID) (*Show, error)
	// FindShow matches on the show id and both of its references.
	FindShow(ctx context.Context, id, theatreID, movieID primitive.ObjectID) (*Show, error)
	ListShows(ctx context.Context, filter ShowFilter) ([]*Show, error)
	UpdateShow(ctx context.Context, id primitive.ObjectID, update ShowUpdate) (*Show, error)
	DeleteShow(ctx context.Context, id primitive.ObjectID) (*Show, error)
}

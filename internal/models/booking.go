package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingExpired   = "expired"
)

// Booking holds a seat reservation against a show. TotalCost is fixed at
// creation and UserID never changes.
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId" validate:"required"`
	TheatreID primitive.ObjectID `bson:"theatreId" json:"theatreId" validate:"required"`
	MovieID   primitive.ObjectID `bson:"movieId" json:"movieId" validate:"required"`
	ShowID    primitive.ObjectID `bson:"showId" json:"showId" validate:"required"`
	Timing    time.Time          `bson:"timing" json:"timing" validate:"required"`
	NoOfSeats int                `bson:"noOfSeats" json:"noOfSeats" validate:"min=1"`
	TotalCost float64            `bson:"totalCost" json:"totalCost" validate:"gte=0"`
	Status    string             `bson:"status" json:"status" validate:"oneof=pending confirmed cancelled expired"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	// ListBookings returns every booking when userID is zero.
	ListBookings(ctx context.Context, userID primitive.ObjectID) ([]*Booking, error)
	UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status string) (*Booking, error)
}

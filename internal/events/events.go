// Package events publishes booking lifecycle events to RabbitMQ.
package events

import (
	"context"
	"time"
)

const (
	BookingCreated = "booking.created"
	BookingUpdated = "booking.updated"

	DefaultExchange = "mba.bookings"
)

// BookingEvent is the message body for every booking routing key.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId"`
	UserID     string    `json:"userId"`
	TheatreID  string    `json:"theatreId"`
	MovieID    string    `json:"movieId"`
	ShowID     string    `json:"showId"`
	Timing     time.Time `json:"timing"`
	NoOfSeats  int       `json:"noOfSeats"`
	TotalCost  float64   `json:"totalCost"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// NopPublisher discards events. It stands in when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (NopPublisher) Close() error { return nil }

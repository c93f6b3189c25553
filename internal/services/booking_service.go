package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joshua-takyi/mba/internal/events"
	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
)

// CannotChangeStatusMessage is returned when a customer asks for any status
// other than cancelled.
const CannotChangeStatusMessage = "You are not allowed to change the booking status"

type BookingService struct {
	bookingRepo    models.BookingRepo
	showRepo       models.ShowRepo
	publisher      events.Publisher
	publishTimeout time.Duration
	logger         *slog.Logger
}

func NewBookingService(bookingRepo models.BookingRepo, showRepo models.ShowRepo, publisher events.Publisher, logger *slog.Logger) *BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingService{
		bookingRepo:    bookingRepo,
		showRepo:       showRepo,
		publisher:      publisher,
		publishTimeout: 5 * time.Second,
		logger:         logger,
	}
}

type BookingInput struct {
	TheatreID string `json:"theatreId"`
	MovieID   string `json:"movieId"`
	ShowID    string `json:"showId"`
	NoOfSeats int    `json:"noOfSeats"`
}

// BookingUpdate only exposes the status; every other booking field is fixed
// once created.
type BookingUpdate struct {
	Status *string `json:"status"`
}

// CreateBooking books seats on the show matching the show, theatre and movie
// ids. The cost is computed from the current show price and never
// recomputed.
func (bs *BookingService) CreateBooking(ctx context.Context, userID primitive.ObjectID, in BookingInput) (*models.Booking, error) {
	theatreID, ok := helpers.ParseID(in.TheatreID)
	if !ok {
		return nil, helpers.BadRequest("Invalid theatre id")
	}
	movieID, ok := helpers.ParseID(in.MovieID)
	if !ok {
		return nil, helpers.BadRequest("Invalid movie id")
	}
	if strings.TrimSpace(in.ShowID) == "" {
		return nil, helpers.BadRequest("No show ID provided")
	}
	showID, ok := helpers.ParseID(in.ShowID)
	if !ok {
		return nil, helpers.BadRequest("Invalid show id")
	}

	show, err := bs.showRepo.FindShow(ctx, showID, theatreID, movieID)
	if err != nil {
		return nil, notFound(err, "Show not found")
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		UserID:    userID,
		TheatreID: theatreID,
		MovieID:   movieID,
		ShowID:    show.ID,
		Timing:    show.Timing,
		NoOfSeats: in.NoOfSeats,
		TotalCost: float64(in.NoOfSeats) * show.Price,
		Status:    models.BookingPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := models.Validate.Struct(booking); err != nil {
		return nil, invalid(err)
	}

	created, err := bs.bookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}
	bs.publish(events.BookingCreated, created)
	return created, nil
}

// UpdateBooking changes the booking status. Customers can only touch their
// own bookings and can only cancel them.
func (bs *BookingService) UpdateBooking(ctx context.Context, caller *models.User, id string, update BookingUpdate) (*models.Booking, error) {
	oid, ok := helpers.ParseID(id)
	if !ok {
		return nil, helpers.BadRequest("Invalid booking id")
	}
	booking, err := bs.bookingRepo.GetBookingByID(ctx, oid)
	if err != nil {
		return nil, notFound(err, "No booking found for the given id")
	}
	if caller.IsCustomer() && booking.UserID != caller.ID {
		return nil, helpers.Unauthorized("Not able to access the booking")
	}
	if update.Status == nil {
		return booking, nil
	}

	status := strings.ToLower(strings.TrimSpace(*update.Status))
	if caller.IsCustomer() && status != models.BookingCancelled {
		return nil, helpers.Unauthorized(CannotChangeStatusMessage)
	}
	if err := models.Validate.Var(status, "oneof=pending confirmed cancelled expired"); err != nil {
		return nil, helpers.Unprocessable(map[string]string{
			"status": "status must be one of [pending confirmed cancelled expired]",
		})
	}

	updated, err := bs.bookingRepo.UpdateBookingStatus(ctx, oid, status)
	if err != nil {
		return nil, notFound(err, "No booking found for the given id")
	}
	bs.publish(events.BookingUpdated, updated)
	return updated, nil
}

func (bs *BookingService) GetBookings(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	return bs.bookingRepo.ListBookings(ctx, userID)
}

func (bs *BookingService) GetAllBookings(ctx context.Context) ([]*models.Booking, error) {
	return bs.bookingRepo.ListBookings(ctx, primitive.NilObjectID)
}

// GetBookingByID only returns the booking to its owner.
func (bs *BookingService) GetBookingByID(ctx context.Context, id string, userID primitive.ObjectID) (*models.Booking, error) {
	oid, ok := helpers.ParseID(id)
	if !ok {
		return nil, helpers.BadRequest("Invalid booking id")
	}
	booking, err := bs.bookingRepo.GetBookingByID(ctx, oid)
	if err != nil {
		return nil, notFound(err, "No booking records found for the id")
	}
	if booking.UserID != userID {
		return nil, helpers.Unauthorized("Not able to access the booking")
	}
	return booking, nil
}

// publish hands the event to the broker in the background. A failed publish
// never fails the request.
func (bs *BookingService) publish(eventType string, b *models.Booking) {
	event := events.BookingEvent{
		Type:       eventType,
		BookingID:  b.ID.Hex(),
		UserID:     b.UserID.Hex(),
		TheatreID:  b.TheatreID.Hex(),
		MovieID:    b.MovieID.Hex(),
		ShowID:     b.ShowID.Hex(),
		Timing:     b.Timing,
		NoOfSeats:  b.NoOfSeats,
		TotalCost:  b.TotalCost,
		Status:     b.Status,
		OccurredAt: time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), bs.publishTimeout)
		defer cancel()
		if err := bs.publisher.Publish(ctx, event); err != nil {
			bs.logger.Error("Failed to publish booking event", "type", eventType, "booking_id", event.BookingID, "error", err)
		}
	}()
}

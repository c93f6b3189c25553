package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/joshua-takyi/mba/internal/events"
	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
	"github.com/joshua-takyi/mba/internal/models/memory"
	"github.com/joshua-takyi/mba/internal/notify"
)

type fakeNotifier struct {
	sent chan notify.Mail
}

func (f *fakeNotifier) Send(_ context.Context, mail notify.Mail) error {
	f.sent <- mail
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
	got    chan struct{}
}

func (f *fakePublisher) Publish(_ context.Context, e events.BookingEvent) error {
	f.mu.Lock()
	f.events = append(f.events, e)
	f.mu.Unlock()
	f.got <- struct{}{}
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type testEnv struct {
	store     *memory.Store
	users     *UserService
	theatres  *TheatreService
	shows     *ShowService
	bookings  *BookingService
	notifier  *fakeNotifier
	publisher *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	notifier := &fakeNotifier{sent: make(chan notify.Mail, 8)}
	publisher := &fakePublisher{got: make(chan struct{}, 8)}
	tokens := helpers.NewTokenIssuer("test-secret", time.Hour)
	return &testEnv{
		store:     store,
		users:     NewUserService(store, tokens, bcrypt.MinCost),
		theatres:  NewTheatreService(store, store, store, notifier, time.Second, logger),
		shows:     NewShowService(store, store),
		bookings:  NewBookingService(store, store, publisher, logger),
		notifier:  notifier,
		publisher: publisher,
	}
}

func (e *testEnv) mustUser(t *testing.T, email, role string) *models.User {
	t.Helper()
	user, err := e.users.CreateUser(context.Background(), SignupInput{
		Name:     "Test User",
		Email:    email,
		Password: "secret",
		UserRole: role,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return user
}

// mustShow seeds a movie, a theatre listing it and a show of it.
func (e *testEnv) mustShow(t *testing.T, price float64) *models.Show {
	t.Helper()
	ctx := context.Background()
	movie := e.store.PutMovie(models.Movie{Name: "Interstellar"})
	theatre, err := e.store.CreateTheatre(ctx, &models.Theatre{
		Name:    "Grand Cinema",
		City:    "Pune",
		Pincode: 411001,
		Movies:  []primitive.ObjectID{movie.ID},
	})
	if err != nil {
		t.Fatalf("CreateTheatre: %v", err)
	}
	show, err := e.shows.CreateShow(ctx, ShowInput{
		TheatreID: theatre.ID.Hex(),
		MovieID:   movie.ID.Hex(),
		Timing:    time.Date(2026, 11, 1, 18, 30, 0, 0, time.UTC),
		NoOfSeats: 100,
		Price:     price,
	})
	if err != nil {
		t.Fatalf("CreateShow: %v", err)
	}
	return show
}

func wantKind(t *testing.T, err error, kind helpers.ErrorKind, msg string) {
	t.Helper()
	appErr, ok := helpers.AsAppError(err)
	if !ok {
		t.Fatalf("error %v is not an AppError", err)
	}
	if appErr.Kind != kind {
		t.Fatalf("kind = %s, want %s (%v)", appErr.Kind, kind, err)
	}
	if msg != "" && appErr.Message != msg {
		t.Fatalf("message = %q, want %q", appErr.Message, msg)
	}
}

package container

import (
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/joshua-takyi/mba/internal/config"
	"github.com/joshua-takyi/mba/internal/events"
	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
	"github.com/joshua-takyi/mba/internal/notify"
	"github.com/joshua-takyi/mba/internal/services"
)

// Store is satisfied by both the Mongo repo and the in-memory store.
type Store interface {
	models.UserRepo
	models.TheatreRepo
	models.MovieRepo
	models.ShowRepo
	models.BookingRepo
}

// Container holds all application dependencies
type Container struct {
	Logger    *slog.Logger
	Config    *config.Config
	Redis     *redis.Client
	Publisher events.Publisher

	UserService    *services.UserService
	TheatreService *services.TheatreService
	ShowService    *services.ShowService
	BookingService *services.BookingService
}

// NewContainer creates a new dependency injection container. notifier,
// publisher and rdb are optional.
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	store Store,
	notifier notify.Notifier,
	publisher events.Publisher,
	rdb *redis.Client,
) *Container {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	tokens := helpers.NewTokenIssuer(cfg.AuthKey, cfg.TokenTTL)

	return &Container{
		Logger:         logger,
		Config:         cfg,
		Redis:          rdb,
		Publisher:      publisher,
		UserService:    services.NewUserService(store, tokens, cfg.BcryptCost),
		TheatreService: services.NewTheatreService(store, store, store, notifier, cfg.NotifyTimeout, logger),
		ShowService:    services.NewShowService(store, store),
		BookingService: services.NewBookingService(store, store, publisher, logger),
	}
}

// Close releases the broker and cache connections. The Mongo client is owned
// by main.
func (c *Container) Close() error {
	var errs []error
	if err := c.Publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

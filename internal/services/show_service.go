package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
)

type ShowService struct {
	showRepo    models.ShowRepo
	theatreRepo models.TheatreRepo
}

func NewShowService(showRepo models.ShowRepo, theatreRepo models.TheatreRepo) *ShowService {
	return &ShowService{
		showRepo:    showRepo,
		theatreRepo: theatreRepo,
	}
}

type ShowInput struct {
	TheatreID         string    `json:"theatreId"`
	MovieID           string    `json:"movieId"`
	Timing            time.Time `json:"timing"`
	NoOfSeats         int       `json:"noOfSeats"`
	SeatConfiguration *string   `json:"seatConfiguration"`
	Price             float64   `json:"price"`
	Format            string    `json:"format"`
}

func duplicateShow() error {
	return helpers.Unprocessable(map[string]string{
		"timing": "a show for this movie is already scheduled at this time in the theatre",
	})
}

// CreateShow schedules a show. The movie must already be listed by the theatre.
func (ss *ShowService) CreateShow(ctx context.Context, in ShowInput) (*models.Show, error) {
	theatreID, ok := helpers.ParseID(in.TheatreID)
	if !ok {
		return nil, helpers.BadRequest("Invalid theatre id")
	}
	movieID, ok := helpers.ParseID(in.MovieID)
	if !ok {
		return nil, helpers.BadRequest("Invalid movie id")
	}

	theatre, err := ss.theatreRepo.GetTheatreByID(ctx, theatreID)
	if err != nil {
		return nil, notFound(err, "No theatre found")
	}
	if !theatre.HasMovie(movieID) {
		return nil, helpers.NotFound("Movie is not available in the requested theatre")
	}

	format := strings.ToUpper(strings.TrimSpace(in.Format))
	if format == "" {
		format = models.Format2D
	}
	now := time.Now().UTC()
	show := &models.Show{
		TheatreID:         theatreID,
		MovieID:           movieID,
		Timing:            in.Timing.UTC(),
		NoOfSeats:         in.NoOfSeats,
		SeatConfiguration: in.SeatConfiguration,
		Price:             in.Price,
		Format:            format,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := models.Validate.Struct(show); err != nil {
		return nil, invalid(err)
	}

	created, err := ss.showRepo.CreateShow(ctx, show)
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, duplicateShow()
		}
		return nil, err
	}
	return created, nil
}

// GetShows lists shows, optionally narrowed to a theatre and/or a movie.
func (ss *ShowService) GetShows(ctx context.Context, theatreID, movieID string) ([]*models.Show, error) {
	var filter models.ShowFilter
	if theatreID != "" {
		id, ok := helpers.ParseID(theatreID)
		if !ok {
			return nil, helpers.BadRequest("Invalid theatre id")
		}
		filter.TheatreID = id
	}
	if movieID != "" {
		id, ok := helpers.ParseID(movieID)
		if !ok {
			return nil, helpers.BadRequest("Invalid movie id")
		}
		filter.MovieID = id
	}

	shows, err := ss.showRepo.ListShows(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(shows) == 0 {
		return nil, helpers.NotFound("No shows found")
	}
	return shows, nil
}

func (ss *ShowService) DeleteShow(ctx context.Context, id string) (*models.Show, error) {
	oid, ok := helpers.ParseID(id)
	if !ok {
		return nil, helpers.BadRequest("Invalid show id")
	}
	show, err := ss.showRepo.DeleteShow(ctx, oid)
	if err != nil {
		return nil, notFound(err, "No show found")
	}
	return show, nil
}

func (ss *ShowService) UpdateShow(ctx context.Context, id string, update models.ShowUpdate) (*models.Show, error) {
	oid, ok := helpers.ParseID(id)
	if !ok {
		return nil, helpers.BadRequest("Invalid show id")
	}
	if update.Format != nil {
		update.Format = normalizedOrNil(update.Format, func(s string) string {
			return strings.ToUpper(strings.TrimSpace(s))
		})
	}
	if err := models.Validate.Struct(update); err != nil {
		return nil, invalid(err)
	}

	show, err := ss.showRepo.UpdateShow(ctx, oid, update)
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, duplicateShow()
		}
		return nil, notFound(err, "No show found for the given ID")
	}
	return show, nil
}

package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
	"github.com/joshua-takyi/mba/internal/notify"
)

const (
	theatreCreatedSubject = "Successfully created a theatre"
	theatreCreatedContent = "You have successfully created a new theatre"
)

type TheatreService struct {
	theatreRepo   models.TheatreRepo
	movieRepo     models.MovieRepo
	userRepo      models.UserRepo
	notifier      notify.Notifier
	notifyTimeout time.Duration
	logger        *slog.Logger
}

func NewTheatreService(theatreRepo models.TheatreRepo, movieRepo models.MovieRepo, userRepo models.UserRepo,
	notifier notify.Notifier, notifyTimeout time.Duration, logger *slog.Logger) *TheatreService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if notifyTimeout <= 0 {
		notifyTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TheatreService{
		theatreRepo:   theatreRepo,
		movieRepo:     movieRepo,
		userRepo:      userRepo,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
		logger:        logger,
	}
}

type TheatreInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	Pincode     int      `json:"pincode"`
	Address     string   `json:"address"`
	Movies      []string `json:"movies"`
}

// TheatreQuery carries the list filters as they arrive on the query string.
// Skip is a page index.
type TheatreQuery struct {
	City     string
	Pincode  int
	Name     string
	MovieIDs []string
	Limit    int64
	Skip     int64
}

// PopulatedTheatre is a theatre whose movie ids were replaced by the movies.
type PopulatedTheatre struct {
	*models.Theatre
	Movies []*models.Movie `json:"movies"`
}

// TheatreMovies is the trimmed theatre view returned by GetMoviesInATheatre.
type TheatreMovies struct {
	ID      primitive.ObjectID `json:"id"`
	Name    string             `json:"name"`
	Address string             `json:"address,omitempty"`
	Movies  []*models.Movie    `json:"movies"`
}

func (ts *TheatreService) CreateTheatre(ctx context.Context, in TheatreInput, owner primitive.ObjectID) (*models.Theatre, error) {
	movies, bad, ok := helpers.ParseIDs(in.Movies)
	if !ok {
		return nil, helpers.BadRequest("Invalid movie id: " + bad)
	}
	now := time.Now().UTC()
	theatre := &models.Theatre{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		City:        strings.TrimSpace(in.City),
		Pincode:     in.Pincode,
		Address:     in.Address,
		Owner:       owner,
		Movies:      movies,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := models.Validate.Struct(theatre); err != nil {
		return nil, invalid(err)
	}
	created, err := ts.theatreRepo.CreateTheatre(ctx, theatre)
	if err != nil {
		return nil, err
	}

	go ts.notifyOwner(owner)
	return created, nil
}

// notifyOwner mails the theatre owner. Failures are only logged.
func (ts *TheatreService) notifyOwner(owner primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), ts.notifyTimeout)
	defer cancel()

	user, err := ts.userRepo.GetUserByID(ctx, owner)
	if err != nil {
		ts.logger.Warn("No user found for theatre notification", "user_id", owner.Hex(), "error", err)
		return
	}
	mail := notify.Mail{
		Subject:         theatreCreatedSubject,
		RecepientEmails: []string{user.Email},
		Content:         theatreCreatedContent,
	}
	if err := ts.notifier.Send(ctx, mail); err != nil {
		ts.logger.Error("Failed to send notification", "user_id", owner.Hex(), "error", err)
	}
}

func (ts *TheatreService) DeleteTheatre(ctx context.Context, id string) (*models.Theatre, error) {
	oid, ok := helpers.ParseID(id)
	if !ok {
		return nil, helpers.BadRequest("Invalid theatre id")
	}
	theatre, err := ts.theatreRepo.DeleteTheatre(ctx, oid)
	if err != nil {
		return nil, notFound(err, "No record of a theatre found for the given id")
	}
	return theatre, nil
}

func (ts *TheatreService) GetTheatre(ctx context.Context, id string) (*models.Theatre, error) {
	oid, ok := helpers.ParseID(id)
	if !ok {
		return nil, helpers.BadRequest("Invalid theatre id")
	}
	theatre, err := ts.theatreRepo.GetTheatreByID(ctx, oid)
	if err != nil {
		return nil, notFound(err, "No theatre found for the given id")
	}
	return theatre, nil
}

func (ts *TheatreService) GetAllTheatres(ctx context.Context, q TheatreQuery) ([]*models.Theatre, error) {
	movieIDs, bad, ok := helpers.ParseIDs(q.MovieIDs)
	if !ok {
		return nil, helpers.BadRequest("Invalid movie id: " + bad)
	}
	limit, skip := models.TheatrePage(q.Limit, q.Skip)
	return ts.theatreRepo.ListTheatres(ctx, models.TheatreFilter{
		City:     q.City,
		Pincode:  q.Pincode,
		Name:     q.Name,
		MovieIDs: movieIDs,
		Limit:    limit,
		Skip:     skip,
	})
}

func (ts *TheatreService) UpdateTheatre(ctx context.Context, id string, update models.TheatreUpdate) (*models.Theatre, error) {
	oid, ok := helpers.ParseID(id)
	if !ok {
		return nil, helpers.BadRequest("Invalid theatre id")
	}
	if err := models.Validate.Struct(update); err != nil {
		return nil, invalid(err)
	}
	theatre, err := ts.theatreRepo.UpdateTheatre(ctx, oid, update)
	if err != nil {
		return nil, notFound(err, "No theatre found for the given id")
	}
	return theatre, nil
}

// UpdateMoviesInTheatres adds movieIDs to the theatre when insert is set and
// removes them otherwise. Adding a movie twice leaves one entry.
func (ts *TheatreService) UpdateMoviesInTheatres(ctx context.Context, id string, movieIDs []string, insert bool) (*PopulatedTheatre, error) {
	oid, ok := helpers.ParseID(id)
	if !ok {
		return nil, helpers.BadRequest("Invalid theatre id")
	}
	ids, bad, ok := helpers.ParseIDs(movieIDs)
	if !ok {
		return nil, helpers.BadRequest("Invalid movie id: " + bad)
	}

	var theatre *models.Theatre
	var err error
	if insert {
		theatre, err = ts.theatreRepo.AddMovies(ctx, oid, ids)
	} else {
		theatre, err = ts.theatreRepo.RemoveMovies(ctx, oid, ids)
	}
	if err != nil {
		return nil, notFound(err, "No theatre found for the given id")
	}

	movies, err := ts.populate(ctx, theatre.Movies)
	if err != nil {
		return nil, err
	}
	return &PopulatedTheatre{Theatre: theatre, Movies: movies}, nil
}

func (ts *TheatreService) GetMoviesInATheatre(ctx context.Context, id string) (*TheatreMovies, error) {
	oid, ok := helpers.ParseID(id)
	if !ok {
		return nil, helpers.BadRequest("Invalid theatre id")
	}
	theatre, err := ts.theatreRepo.GetTheatreByID(ctx, oid)
	if err != nil {
		return nil, notFound(err, "No theatre with the given id found")
	}
	movies, err := ts.populate(ctx, theatre.Movies)
	if err != nil {
		return nil, err
	}
	return &TheatreMovies{
		ID:      theatre.ID,
		Name:    theatre.Name,
		Address: theatre.Address,
		Movies:  movies,
	}, nil
}

func (ts *TheatreService) CheckMovieInATheatre(ctx context.Context, theatreID, movieID string) (bool, error) {
	oid, ok := helpers.ParseID(theatreID)
	if !ok {
		return false, helpers.BadRequest("Invalid theatre id")
	}
	mid, ok := helpers.ParseID(movieID)
	if !ok {
		return false, helpers.BadRequest("Invalid movie id")
	}
	theatre, err := ts.theatreRepo.GetTheatreByID(ctx, oid)
	if err != nil {
		return false, notFound(err, "No such theatre found for the given id")
	}
	return theatre.HasMovie(mid), nil
}

// populate resolves movie ids in the theatre's order. Ids missing from the
// catalogue are skipped.
func (ts *TheatreService) populate(ctx context.Context, ids []primitive.ObjectID) ([]*models.Movie, error) {
	found, err := ts.movieRepo.GetMoviesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Movie, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}
	movies := make([]*models.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			movies = append(movies, m)
		}
	}
	return movies, nil
}

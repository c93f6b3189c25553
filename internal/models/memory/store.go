// Package memory is an in-process implementation of the models repositories.
// It backs STORE_DRIVER=memory and the HTTP tests; it enforces the same
// unique constraints as the Mongo indexes.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joshua-takyi/mba/internal/models"
)

type Store struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]models.User
	theatres map[primitive.ObjectID]models.Theatre
	movies   map[primitive.ObjectID]models.Movie
	shows    map[primitive.ObjectID]models.Show
	bookings map[primitive.ObjectID]models.Booking
	now      func() time.Time
}

func New() *Store {
	return &Store{
		users:    make(map[primitive.ObjectID]models.User),
		theatres: make(map[primitive.ObjectID]models.Theatre),
		movies:   make(map[primitive.ObjectID]models.Movie),
		shows:    make(map[primitive.ObjectID]models.Show),
		bookings: make(map[primitive.ObjectID]models.Booking),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var (
	_ models.UserRepo    = (*Store)(nil)
	_ models.TheatreRepo = (*Store)(nil)
	_ models.MovieRepo   = (*Store)(nil)
	_ models.ShowRepo    = (*Store)(nil)
	_ models.BookingRepo = (*Store)(nil)
)

// PutMovie seeds the movie catalogue.
func (s *Store) PutMovie(movie models.Movie) models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	if movie.ID.IsZero() {
		movie.ID = primitive.NewObjectID()
	}
	s.movies[movie.ID] = movie
	return movie
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, models.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = *user
	out := *user
	return &out, nil
}

func (s *Store) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *Store) UpdateUser(ctx context.Context, id primitive.ObjectID, update models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if update.UserRole != nil {
		u.UserRole = *update.UserRole
	}
	if update.UserStatus != nil {
		u.UserStatus = *update.UserStatus
	}
	u.UpdatedAt = s.now()
	s.users[id] = u
	return &u, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	u.Password = hash
	u.UpdatedAt = s.now()
	s.users[id] = u
	return &u, nil
}

func copyTheatre(t models.Theatre) *models.Theatre {
	t.Movies = append([]primitive.ObjectID{}, t.Movies...)
	return &t
}

func (s *Store) CreateTheatre(ctx context.Context, theatre *models.Theatre) (*models.Theatre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if theatre.ID.IsZero() {
		theatre.ID = primitive.NewObjectID()
	}
	if theatre.Movies == nil {
		theatre.Movies = []primitive.ObjectID{}
	}
	s.theatres[theatre.ID] = *copyTheatre(*theatre)
	return copyTheatre(*theatre), nil
}

func (s *Store) GetTheatreByID(ctx context.Context, id primitive.ObjectID) (*models.Theatre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.theatres[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyTheatre(t), nil
}

func (s *Store) ListTheatres(ctx context.Context, filter models.TheatreFilter) ([]*models.Theatre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]*models.Theatre, 0, len(s.theatres))
	for _, t := range s.theatres {
		if filter.City != "" && t.City != filter.City {
			continue
		}
		if filter.Pincode != 0 && t.Pincode != filter.Pincode {
			continue
		}
		if filter.Name != "" && t.Name != filter.Name {
			continue
		}
		if !hasAll(t.Movies, filter.MovieIDs) {
			continue
		}
		matched = append(matched, copyTheatre(t))
	}
	// insertion order is what Mongo returns without a sort; ids grow with time
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID.Hex() < matched[j].ID.Hex()
	})
	if filter.Skip > 0 {
		if filter.Skip >= int64(len(matched)) {
			return []*models.Theatre{}, nil
		}
		matched = matched[filter.Skip:]
	}
	if filter.Limit > 0 && filter.Limit < int64(len(matched)) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func hasAll(have, want []primitive.ObjectID) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *Store) UpdateTheatre(ctx context.Context, id primitive.ObjectID, update models.TheatreUpdate) (*models.Theatre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.theatres[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if update.Name != nil {
		t.Name = *update.Name
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.City != nil {
		t.City = *update.City
	}
	if update.Pincode != nil {
		t.Pincode = *update.Pincode
	}
	if update.Address != nil {
		t.Address = *update.Address
	}
	if !update.IsEmpty() {
		t.UpdatedAt = s.now()
	}
	s.theatres[id] = t
	return copyTheatre(t), nil
}

func (s *Store) DeleteTheatre(ctx context.Context, id primitive.ObjectID) (*models.Theatre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.theatres[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(s.theatres, id)
	return copyTheatre(t), nil
}

func (s *Store) AddMovies(ctx context.Context, id primitive.ObjectID, movieIDs []primitive.ObjectID) (*models.Theatre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.theatres[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	movies := append([]primitive.ObjectID{}, t.Movies...)
	for _, m := range movieIDs {
		if !hasAll(movies, []primitive.ObjectID{m}) {
			movies = append(movies, m)
		}
	}
	t.Movies = movies
	t.UpdatedAt = s.now()
	s.theatres[id] = t
	return copyTheatre(t), nil
}

func (s *Store) RemoveMovies(ctx context.Context, id primitive.ObjectID, movieIDs []primitive.ObjectID) (*models.Theatre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.theatres[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	kept := make([]primitive.ObjectID, 0, len(t.Movies))
	for _, m := range t.Movies {
		if !hasAll(movieIDs, []primitive.ObjectID{m}) {
			kept = append(kept, m)
		}
	}
	t.Movies = kept
	t.UpdatedAt = s.now()
	s.theatres[id] = t
	return copyTheatre(t), nil
}

func (s *Store) GetMoviesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := s.movies[id]; ok {
			out = append(out, &m)
		}
	}
	return out, nil
}

func (s *Store) CreateShow(ctx context.Context, show *models.Show) (*models.Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.shows {
		if existing.TheatreID == show.TheatreID && existing.MovieID == show.MovieID && existing.Timing.Equal(show.Timing) {
			return nil, models.ErrDuplicate
		}
	}
	if show.ID.IsZero() {
		show.ID = primitive.NewObjectID()
	}
	s.shows[show.ID] = *show
	out := *show
	return &out, nil
}

func (s *Store) GetShowByID(ctx context.Context, id primitive.ObjectID) (*models.Show, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	show, ok := s.shows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &show, nil
}

func (s *Store) FindShow(ctx context.Context, id, theatreID, movieID primitive.ObjectID) (*models.Show, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	show, ok := s.shows[id]
	if !ok || show.TheatreID != theatreID || show.MovieID != movieID {
		return nil, models.ErrNotFound
	}
	return &show, nil
}

func (s *Store) ListShows(ctx context.Context, filter models.ShowFilter) ([]*models.Show, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Show, 0)
	for _, show := range s.shows {
		if !filter.TheatreID.IsZero() && show.TheatreID != filter.TheatreID {
			continue
		}
		if !filter.MovieID.IsZero() && show.MovieID != filter.MovieID {
			continue
		}
		v := show
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timing.Before(out[j].Timing) })
	return out, nil
}

func (s *Store) UpdateShow(ctx context.Context, id primitive.ObjectID, update models.ShowUpdate) (*models.Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	show, ok := s.shows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if update.Timing != nil {
		for otherID, other := range s.shows {
			if otherID != id && other.TheatreID == show.TheatreID && other.MovieID == show.MovieID && other.Timing.Equal(*update.Timing) {
				return nil, models.ErrDuplicate
			}
		}
		show.Timing = update.Timing.UTC()
	}
	if update.NoOfSeats != nil {
		show.NoOfSeats = *update.NoOfSeats
	}
	if update.SeatConfiguration != nil {
		cfg := *update.SeatConfiguration
		show.SeatConfiguration = &cfg
	}
	if update.Price != nil {
		show.Price = *update.Price
	}
	if update.Format != nil {
		show.Format = *update.Format
	}
	show.UpdatedAt = s.now()
	s.shows[id] = show
	return &show, nil
}

func (s *Store) DeleteShow(ctx context.Context, id primitive.ObjectID) (*models.Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	show, ok := s.shows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(s.shows, id)
	return &show, nil
}

func (s *Store) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	s.bookings[booking.ID] = *booking
	out := *booking
	return &out, nil
}

func (s *Store) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &b, nil
}

func (s *Store) ListBookings(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Booking, 0)
	for _, b := range s.bookings {
		if !userID.IsZero() && b.UserID != userID {
			continue
		}
		v := b
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = s.now()
	s.bookings[id] = b
	return &b, nil
}

package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
)

func TestCreateTheatreNotifiesOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.mustUser(t, "owner@x.com", "client")

	theatre, err := env.theatres.CreateTheatre(context.Background(), TheatreInput{
		Name: "Grand Cinema", City: "Pune", Pincode: 411001,
	}, owner.ID)
	if err != nil {
		t.Fatalf("CreateTheatre: %v", err)
	}
	if theatre.Owner != owner.ID {
		t.Errorf("owner = %s, want %s", theatre.Owner.Hex(), owner.ID.Hex())
	}

	select {
	case mail := <-env.notifier.sent:
		if mail.Subject != "Successfully created a theatre" {
			t.Errorf("subject = %q", mail.Subject)
		}
		if len(mail.RecepientEmails) != 1 || mail.RecepientEmails[0] != "owner@x.com" {
			t.Errorf("recipients = %v", mail.RecepientEmails)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification was sent")
	}
}

func TestCreateTheatreValidation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.theatres.CreateTheatre(context.Background(), TheatreInput{Name: "  ", City: "Pune"}, primitive.NewObjectID())
	wantKind(t, err, helpers.KindUnprocessable, "")
	appErr, _ := helpers.AsAppError(err)
	if _, ok := appErr.Fields["name"]; !ok {
		t.Errorf("fields = %v, want name", appErr.Fields)
	}
	if _, ok := appErr.Fields["pincode"]; !ok {
		t.Errorf("fields = %v, want pincode", appErr.Fields)
	}
}

func TestUpdateMoviesInTheatresIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m1 := env.store.PutMovie(models.Movie{Name: "Dune"})
	m2 := env.store.PutMovie(models.Movie{Name: "Arrival"})
	theatre, err := env.store.CreateTheatre(ctx, &models.Theatre{Name: "Grand Cinema", City: "Pune", Pincode: 411001})
	if err != nil {
		t.Fatal(err)
	}

	ids := []string{m1.ID.Hex(), m2.ID.Hex()}
	var got *PopulatedTheatre
	for i := 0; i < 2; i++ {
		got, err = env.theatres.UpdateMoviesInTheatres(ctx, theatre.ID.Hex(), ids, true)
		if err != nil {
			t.Fatalf("UpdateMoviesInTheatres: %v", err)
		}
	}
	if len(got.Theatre.Movies) != 2 {
		t.Fatalf("movie ids = %v, want exactly two", got.Theatre.Movies)
	}
	if len(got.Movies) != 2 || got.Movies[0].Name != "Dune" || got.Movies[1].Name != "Arrival" {
		t.Errorf("populated movies = %+v", got.Movies)
	}

	got, err = env.theatres.UpdateMoviesInTheatres(ctx, theatre.ID.Hex(), ids[:1], false)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(got.Theatre.Movies) != 1 || got.Theatre.Movies[0] != m2.ID {
		t.Errorf("after remove = %v", got.Theatre.Movies)
	}

	_, err = env.theatres.UpdateMoviesInTheatres(ctx, primitive.NewObjectID().Hex(), ids, true)
	wantKind(t, err, helpers.KindNotFound, "No theatre found for the given id")

	_, err = env.theatres.UpdateMoviesInTheatres(ctx, theatre.ID.Hex(), []string{"nope"}, true)
	wantKind(t, err, helpers.KindBadRequest, "Invalid movie id: nope")
}

func TestGetAllTheatresFiltersAndPages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	movie := env.store.PutMovie(models.Movie{Name: "Dune"})
	for i := 0; i < 5; i++ {
		theatre := &models.Theatre{Name: "Theatre number", City: "Pune", Pincode: 411001}
		if i%2 == 0 {
			theatre.Movies = []primitive.ObjectID{movie.ID}
		}
		if _, err := env.store.CreateTheatre(ctx, theatre); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := env.store.CreateTheatre(ctx, &models.Theatre{Name: "Elsewhere", City: "Delhi", Pincode: 110001}); err != nil {
		t.Fatal(err)
	}

	all, err := env.theatres.GetAllTheatres(ctx, TheatreQuery{City: "Pune"})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("city filter returned %d theatres, want 5", len(all))
	}

	withMovie, err := env.theatres.GetAllTheatres(ctx, TheatreQuery{MovieIDs: []string{movie.ID.Hex()}})
	if err != nil {
		t.Fatal(err)
	}
	if len(withMovie) != 3 {
		t.Errorf("movie filter returned %d theatres, want 3", len(withMovie))
	}

	// skip is a page index over pages of the default size 3
	page, err := env.theatres.GetAllTheatres(ctx, TheatreQuery{City: "Pune", Skip: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 {
		t.Errorf("second page has %d theatres, want 2", len(page))
	}

	page, err = env.theatres.GetAllTheatres(ctx, TheatreQuery{City: "Pune", Limit: 2, Skip: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 {
		t.Errorf("page of limit 2 has %d theatres, want 2", len(page))
	}
}

func TestTheatreLookups(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	movie := env.store.PutMovie(models.Movie{Name: "Dune"})
	theatre, err := env.store.CreateTheatre(ctx, &models.Theatre{
		Name: "Grand Cinema", City: "Pune", Pincode: 411001, Address: "MG Road",
		Movies: []primitive.ObjectID{movie.ID},
	})
	if err != nil {
		t.Fatal(err)
	}

	listed, err := env.theatres.GetMoviesInATheatre(ctx, theatre.ID.Hex())
	if err != nil {
		t.Fatalf("GetMoviesInATheatre: %v", err)
	}
	if listed.Name != "Grand Cinema" || listed.Address != "MG Road" || len(listed.Movies) != 1 {
		t.Errorf("unexpected listing %+v", listed)
	}

	ok, err := env.theatres.CheckMovieInATheatre(ctx, theatre.ID.Hex(), movie.ID.Hex())
	if err != nil || !ok {
		t.Errorf("CheckMovieInATheatre = %v, %v; want true", ok, err)
	}
	ok, err = env.theatres.CheckMovieInATheatre(ctx, theatre.ID.Hex(), primitive.NewObjectID().Hex())
	if err != nil || ok {
		t.Errorf("CheckMovieInATheatre for another movie = %v, %v; want false", ok, err)
	}

	missing := primitive.NewObjectID().Hex()
	_, err = env.theatres.GetTheatre(ctx, missing)
	wantKind(t, err, helpers.KindNotFound, "No theatre found for the given id")
	_, err = env.theatres.GetMoviesInATheatre(ctx, missing)
	wantKind(t, err, helpers.KindNotFound, "No theatre with the given id found")
	_, err = env.theatres.CheckMovieInATheatre(ctx, missing, movie.ID.Hex())
	wantKind(t, err, helpers.KindNotFound, "No such theatre found for the given id")
}

func TestUpdateAndDeleteTheatre(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	theatre, err := env.store.CreateTheatre(ctx, &models.Theatre{Name: "Grand Cinema", City: "Pune", Pincode: 411001})
	if err != nil {
		t.Fatal(err)
	}

	city := "Mumbai"
	updated, err := env.theatres.UpdateTheatre(ctx, theatre.ID.Hex(), models.TheatreUpdate{City: &city})
	if err != nil {
		t.Fatalf("UpdateTheatre: %v", err)
	}
	if updated.City != "Mumbai" || updated.Name != "Grand Cinema" {
		t.Errorf("unexpected update result %+v", updated)
	}

	short := "PVR"
	updated, err = env.theatres.UpdateTheatre(ctx, theatre.ID.Hex(), models.TheatreUpdate{Name: &short})
	if err != nil || updated.Name != "PVR" {
		t.Fatalf("short name update: %v %+v", err, updated)
	}

	if _, err := env.theatres.DeleteTheatre(ctx, theatre.ID.Hex()); err != nil {
		t.Fatalf("DeleteTheatre: %v", err)
	}
	_, err = env.theatres.DeleteTheatre(ctx, theatre.ID.Hex())
	wantKind(t, err, helpers.KindNotFound, "No record of a theatre found for the given id")
}

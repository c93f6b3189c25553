package middleware

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joshua-takyi/mba/internal/models"
)

type bodyCase struct {
	name       string
	body       interface{}
	wantStatus int
	wantErr    string
}

func runBodyCases(t *testing.T, r *gin.Engine, method, path, token string, cases []bodyCase) {
	t.Helper()
	for _, tc := range cases {
		w, env := serve(r, method, path, token, tc.body)
		if w.Code != tc.wantStatus {
			t.Errorf("%s: status %d, want %d (%s)", tc.name, w.Code, tc.wantStatus, w.Body)
			continue
		}
		if tc.wantErr != "" && env.errText() != tc.wantErr {
			t.Errorf("%s: err %q, want %q", tc.name, env.errText(), tc.wantErr)
		}
	}
}

func TestValidateSignupRequest(t *testing.T) {
	r := gin.New()
	r.POST("/signup", ValidateSignupRequest(), ok)
	runBodyCases(t, r, http.MethodPost, "/signup", "", []bodyCase{
		{"empty body", nil, http.StatusBadRequest, "Name of the user not present in the request"},
		{"no email", gin.H{"name": "A", "password": "p"}, http.StatusBadRequest, "Email of the user not present in the request"},
		{"empty password", gin.H{"name": "A", "email": "a@x.com", "password": ""}, http.StatusBadRequest, "Password of the user not present in the request"},
		{"malformed", `{"name":`, http.StatusBadRequest, "Malformed JSON in request body"},
		{"complete", gin.H{"name": "A", "email": "a@x.com", "password": "p"}, http.StatusOK, ""},
	})
}

func TestValidateSigninAndResetRequests(t *testing.T) {
	r := gin.New()
	r.POST("/signin", ValidateSigninRequest(), ok)
	r.PATCH("/reset", ValidateResetPasswordRequest(), ok)
	runBodyCases(t, r, http.MethodPost, "/signin", "", []bodyCase{
		{"no email", gin.H{"password": "p"}, http.StatusBadRequest, "No email provided for sign in"},
		{"no password", gin.H{"email": "a@x.com"}, http.StatusBadRequest, "No password provided for sign in"},
		{"complete", gin.H{"email": "a@x.com", "password": "p"}, http.StatusOK, ""},
	})
	runBodyCases(t, r, http.MethodPatch, "/reset", "", []bodyCase{
		{"no old", gin.H{"newPassword": "n"}, http.StatusBadRequest, "Missing the old password in the request"},
		{"no new", gin.H{"oldPassword": "o"}, http.StatusBadRequest, "Missing the new password in the request"},
		{"complete", gin.H{"oldPassword": "o", "newPassword": "n"}, http.StatusOK, ""},
	})
}

func TestValidateTheatreRequests(t *testing.T) {
	r := gin.New()
	r.POST("/theatres", ValidateTheatreCreateRequest(), ok)
	r.PATCH("/theatres/movies", ValidateUpdateMoviesRequest(), ok)
	runBodyCases(t, r, http.MethodPost, "/theatres", "", []bodyCase{
		{"no name", gin.H{"pincode": 1, "city": "Pune"}, http.StatusBadRequest, "The name of the theatre is missing in the request"},
		{"zero pincode", gin.H{"name": "Grand", "pincode": 0, "city": "Pune"}, http.StatusBadRequest, "The pincode of the theatre is missing in the request"},
		{"no city", gin.H{"name": "Grand", "pincode": 411001}, http.StatusBadRequest, "The city of the theatre is missing in the request"},
		{"complete", gin.H{"name": "Grand", "pincode": 411001, "city": "Pune"}, http.StatusOK, ""},
	})
	runBodyCases(t, r, http.MethodPatch, "/theatres/movies", "", []bodyCase{
		{"no insert", gin.H{"movieIds": []string{"a"}}, http.StatusBadRequest, `The "insert" parameter is missing in the request`},
		{"no movies", gin.H{"insert": true}, http.StatusBadRequest, "No movies provided in the request to update in theatre"},
		{"not an array", gin.H{"insert": true, "movieIds": "a"}, http.StatusBadRequest, `Expected "movieIds" to be an array`},
		{"empty array", gin.H{"insert": true, "movieIds": []string{}}, http.StatusBadRequest, `The "movieIds" array is empty`},
		{"insert false is present", gin.H{"insert": false, "movieIds": []string{"a"}}, http.StatusOK, ""},
	})
}

func TestValidateShowRequests(t *testing.T) {
	r := gin.New()
	r.POST("/shows", ValidateCreateShowRequest(), ok)
	r.PATCH("/shows", ValidateShowUpdateRequest(), ok)
	id := primitive.NewObjectID().Hex()
	full := func() gin.H {
		return gin.H{"theatreId": id, "movieId": id, "timing": "2026-11-01T18:30:00Z", "noOfSeats": 10, "price": 120}
	}
	without := func(key string) gin.H {
		b := full()
		delete(b, key)
		return b
	}
	with := func(key string, v interface{}) gin.H {
		b := full()
		b[key] = v
		return b
	}
	runBodyCases(t, r, http.MethodPost, "/shows", "", []bodyCase{
		{"no theatre", without("theatreId"), http.StatusBadRequest, "No theatre provided"},
		{"bad theatre", with("theatreId", "123"), http.StatusBadRequest, "Invalid theatre id"},
		{"no movie", without("movieId"), http.StatusBadRequest, "No movie provided"},
		{"bad movie", with("movieId", 42), http.StatusBadRequest, "Invalid movie id"},
		{"no timing", without("timing"), http.StatusBadRequest, "No timing provided"},
		{"no seats", without("noOfSeats"), http.StatusBadRequest, "No seat info provided"},
		{"zero price", with("price", 0), http.StatusBadRequest, "No price information provided"},
		{"date only timing", with("timing", "2026-11-01"), http.StatusBadRequest, "Invalid timing format, expected an RFC3339 timestamp"},
		{"numeric timing", with("timing", 1730485800), http.StatusBadRequest, "Invalid timing format, expected an RFC3339 timestamp"},
		{"offset timing", with("timing", "2026-11-01T18:30:00+05:30"), http.StatusOK, ""},
		{"complete", full(), http.StatusOK, ""},
	})
	runBodyCases(t, r, http.MethodPatch, "/shows", "", []bodyCase{
		{"theatre change", gin.H{"theatreId": id}, http.StatusBadRequest, "Cannot update theatre or movie for an existing show"},
		{"movie change", gin.H{"movieId": id, "price": 10}, http.StatusBadRequest, "Cannot update theatre or movie for an existing show"},
		{"price change", gin.H{"price": 10}, http.StatusOK, ""},
		{"bad timing", gin.H{"timing": "tomorrow evening"}, http.StatusBadRequest, "Invalid timing format, expected an RFC3339 timestamp"},
		{"timing change", gin.H{"timing": "2026-11-02T18:30:00Z"}, http.StatusOK, ""},
	})
}

func TestValidateBookingCreateRequest(t *testing.T) {
	f := newFixture()
	movie := f.store.PutMovie(models.Movie{Name: "Dune"})
	theatre, err := f.store.CreateTheatre(context.Background(), &models.Theatre{
		Name: "Grand Cinema", City: "Pune", Pincode: 411001, Movies: []primitive.ObjectID{movie.ID},
	})
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	r.POST("/bookings", ValidateBookingCreateRequest(f.theatres), ok)

	body := func(theatreID, movieID interface{}) gin.H {
		return gin.H{"theatreId": theatreID, "movieId": movieID, "timing": "evening", "noOfSeats": 2}
	}
	runBodyCases(t, r, http.MethodPost, "/bookings", "", []bodyCase{
		{"no theatre", gin.H{"movieId": movie.ID.Hex()}, http.StatusBadRequest, "No theatre ID provided"},
		{"bad theatre", body("nope", movie.ID.Hex()), http.StatusBadRequest, "Invalid theatre ID format"},
		{"unknown theatre", body(primitive.NewObjectID().Hex(), movie.ID.Hex()), http.StatusNotFound, "No theatre found for the given ID"},
		{"no movie", gin.H{"theatreId": theatre.ID.Hex()}, http.StatusBadRequest, "No movie ID provided"},
		{"bad movie", body(theatre.ID.Hex(), "nope"), http.StatusBadRequest, "Invalid movie ID format"},
		{"movie not shown", body(theatre.ID.Hex(), primitive.NewObjectID().Hex()), http.StatusNotFound, "The requested movie is not available in this theatre"},
		{"no timing", gin.H{"theatreId": theatre.ID.Hex(), "movieId": movie.ID.Hex(), "noOfSeats": 2}, http.StatusBadRequest, "No movie timing provided"},
		{"no seats", gin.H{"theatreId": theatre.ID.Hex(), "movieId": movie.ID.Hex(), "timing": "evening"}, http.StatusBadRequest, "No seat count provided"},
		{"complete", body(theatre.ID.Hex(), movie.ID.Hex()), http.StatusOK, ""},
	})
}

func TestCanChangeStatus(t *testing.T) {
	f := newFixture()
	r := gin.New()
	r.PATCH("/bookings/:id", Authenticate(f.users), CanChangeStatus(), ok)
	_, customer := f.user(t, models.RoleCustomer)
	_, admin := f.user(t, models.RoleAdmin)

	runBodyCases(t, r, http.MethodPatch, "/bookings/1", customer, []bodyCase{
		{"customer confirms", gin.H{"status": "confirmed"}, http.StatusUnauthorized, "You are not allowed to change the booking status"},
		{"customer cancels", gin.H{"status": "cancelled"}, http.StatusOK, ""},
		{"customer without status", gin.H{}, http.StatusOK, ""},
	})
	runBodyCases(t, r, http.MethodPatch, "/bookings/1", admin, []bodyCase{
		{"admin confirms", gin.H{"status": "confirmed"}, http.StatusOK, ""},
	})
}

func TestValidateUpdateUserRequest(t *testing.T) {
	r := gin.New()
	r.PATCH("/user", ValidateUpdateUserRequest(), ok)
	runBodyCases(t, r, http.MethodPatch, "/user", "", []bodyCase{
		{"neither", gin.H{"name": "x"}, http.StatusBadRequest, "Malformed request, please provide at least one of 'userRole' or 'userStatus'."},
		{"role", gin.H{"userRole": "client"}, http.StatusOK, ""},
		{"status", gin.H{"userStatus": "approved"}, http.StatusOK, ""},
	})
}

func TestBodyStaysReadableForHandler(t *testing.T) {
	r := gin.New()
	var got struct {
		Name string `json:"name"`
	}
	r.POST("/signup", ValidateSignupRequest(), func(c *gin.Context) {
		if err := c.ShouldBindBodyWithJSON(&got); err != nil {
			t.Errorf("rebinding body: %v", err)
		}
		ok(c)
	})
	if w, _ := serve(r, http.MethodPost, "/signup", "", gin.H{"name": "A", "email": "a@x.com", "password": "p"}); w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if got.Name != "A" {
		t.Errorf("handler saw name %q", got.Name)
	}
}

func TestPresent(t *testing.T) {
	cases := map[string]struct {
		v    interface{}
		want bool
	}{
		"nil":          {nil, false},
		"empty string": {"", false},
		"false":        {false, false},
		"zero":         {float64(0), false},
		"string":       {"x", true},
		"true":         {true, true},
		"number":       {float64(3), true},
		"empty array":  {[]interface{}{}, true},
	}
	for name, tc := range cases {
		if got := present(tc.v); got != tc.want {
			t.Errorf("%s: present = %v, want %v", name, got, tc.want)
		}
	}
}

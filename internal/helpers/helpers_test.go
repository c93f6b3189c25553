package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	raw, err := issuer.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := issuer.Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.ID != "user-1" || claims.Email != "a@x.com" {
		t.Errorf("claims = %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("token lifetime = %v, want 1h", got)
	}
}

func TestTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	raw, _ := issuer.Issue("user-1", "a@x.com")

	if _, err := NewTokenIssuer("other", time.Hour).Validate(raw); err == nil {
		t.Error("token signed with another secret was accepted")
	}
	if _, err := issuer.Validate("not-a-token"); err == nil {
		t.Error("malformed token was accepted")
	}

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.Issue("user-1", "a@x.com")
	_, err := issuer.Validate(old)
	if err == nil || !strings.Contains(err.Error(), "expired") {
		t.Errorf("expired token: err = %v", err)
	}

	if _, err := NewTokenIssuer("", time.Hour).Issue("user-1", "a@x.com"); err == nil {
		t.Error("issued a token without a secret")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if hash == "hunter2" {
		t.Fatal("password stored in clear")
	}
	if !VerifyPassword(hash, "hunter2") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "hunter3") {
		t.Error("wrong password accepted")
	}
}

func TestParseIDs(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	ids, _, ok := ParseIDs([]string{a.Hex(), " " + b.Hex(), `"` + a.Hex() + `"`})
	if !ok || len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Errorf("ParseIDs = %v, %v", ids, ok)
	}
	if _, bad, ok := ParseIDs([]string{a.Hex(), "zz"}); ok || bad != "zz" {
		t.Errorf("bad entry = %q, ok = %v", bad, ok)
	}
	if IsValidID("123") {
		t.Error("short id accepted")
	}
}

func TestAppError(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{BadRequest("x"), http.StatusBadRequest},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{NotFound("x"), http.StatusNotFound},
		{Unprocessable(map[string]string{"f": "m"}), http.StatusUnprocessableEntity},
		{&AppError{}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.Status(); got != tc.status {
			t.Errorf("%s: status %d, want %d", tc.err.Kind, got, tc.status)
		}
	}

	wrapped := fmt.Errorf("loading: %w", NotFound("No show found"))
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Payload() != "No show found" {
		t.Errorf("AsAppError = %v, %v", appErr, ok)
	}
	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Error("plain error treated as AppError")
	}
	fields := Unprocessable(map[string]string{"email": "taken"}).Payload()
	if m, ok := fields.(map[string]string); !ok || m["email"] != "taken" {
		t.Errorf("payload = %v", fields)
	}
}

func TestValidationFields(t *testing.T) {
	type input struct {
		Email string `validate:"required,email"`
		Seats int    `validate:"min=1"`
	}
	err := validator.New().Struct(input{Email: "nope"})
	fields := ValidationFields(err)
	if fields["Email"] != "Email must be a valid email address" {
		t.Errorf("Email = %q", fields["Email"])
	}
	if fields["Seats"] != "Seats must be at least 1" {
		t.Errorf("Seats = %q", fields["Seats"])
	}
	if ValidationFields(errors.New("other")) != nil {
		t.Error("non validator error produced fields")
	}
}

func TestEnvelopes(t *testing.T) {
	ok := SuccessResponse(nil, "done")
	if !ok.Success || ok.Message != "done" || ok.Data == nil {
		t.Errorf("success envelope = %+v", ok)
	}
	bad := ErrorResponse("boom")
	if bad.Success || bad.Message != "Something went wrong" || bad.Err != "boom" {
		t.Errorf("error envelope = %+v", bad)
	}
}

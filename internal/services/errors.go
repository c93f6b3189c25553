package services

import (
	"errors"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
)

// notFound turns a store miss into a NotFound carrying msg. Other errors pass
// through untouched and end up as a 500.
func notFound(err error, msg string) error {
	if errors.Is(err, models.ErrNotFound) {
		return helpers.NotFound(msg)
	}
	return err
}

// invalid maps validator output onto a 422 with a field map.
func invalid(err error) error {
	if fields := helpers.ValidationFields(err); len(fields) > 0 {
		return helpers.Unprocessable(fields)
	}
	return err
}

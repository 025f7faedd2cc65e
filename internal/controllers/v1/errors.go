package v1

import (
	"errors"
	"net/http"

	"github.com/initiativelab/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Dashboard errors
var (
	errStageUnknown = errors.New("one of the stages in the stages parameter does not exist")
	errViewInvalid  = errors.New("the view parameter must be one of 'plan' or 'actual'")
)

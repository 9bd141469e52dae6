package proposal

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrInvalidProposalID = errors.New("invalid proposal id")
	ErrInvalidImage      = errors.New("invalid image upload")

	// ErrNotPending: update chỉ cho phép khi proposal còn pending
	ErrNotPending = errors.New("only pending proposals can be edited")

	// ErrPendingDelete: pending proposal phải được approve/reject,
	// không được xóa thẳng
	ErrPendingDelete = errors.New("cannot delete a pending proposal")

	// ErrAlreadyResolved: racer thua cuộc của atomic pending→approved/
	// rejected transition
	ErrAlreadyResolved = errors.New("proposal has already been resolved")
)

// GetHTTPStatusCode map domain error tới HTTP status code
func GetHTTPStatusCode(err error) int {
	var vErrs validation.Errors
	switch {
	case errors.Is(err, ErrProposalNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidProposalID),
		errors.Is(err, ErrInvalidImage),
		errors.Is(err, ErrNotPending),
		errors.Is(err, ErrPendingDelete):
		return http.StatusBadRequest
	case errors.Is(err, ErrAlreadyResolved):
		return http.StatusConflict
	case errors.As(err, &vErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

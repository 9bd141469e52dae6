package card

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Sentinel errors cho card domain. Handler map qua GetHTTPStatusCode.
var (
	ErrCardNotFound  = errors.New("card not found")
	ErrInvalidCardID = errors.New("invalid card id")
	ErrDuplicateName = errors.New("card name already exists")
	ErrInvalidImage  = errors.New("invalid image upload")
)

// GetHTTPStatusCode map domain error tới HTTP status code.
// Unknown errors default về 500.
func GetHTTPStatusCode(err error) int {
	var vErrs validation.Errors
	switch {
	case errors.Is(err, ErrCardNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCardID),
		errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateName):
		return http.StatusConflict
	case errors.As(err, &vErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

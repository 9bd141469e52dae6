package settings

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrSettingsNotFound chỉ dùng internal giữa repo và service;
	// Get() public luôn degrade về defaults
	ErrSettingsNotFound = errors.New("settings not found")

	ErrInvalidEmail = errors.New("admin email must be non-empty and contain @")
)

func GetHTTPStatusCode(err error) int {
	var vErrs validation.Errors
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.As(err, &vErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package auth

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LoginReq là JSON body của POST /api/auth/login
type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResp trả về signed token cho admin panel
type LoginResp struct {
	Token string `json:"token"`
}

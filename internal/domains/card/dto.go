package card

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"commanders-backend/internal/shared"
)

// ============================================================
// REQUEST DTOs
// ============================================================
// Card create/update đi qua multipart form (vì kèm image file),
// nên mọi field đến dưới dạng string. Attributes là JSON text,
// years được normalize ở service layer.

type CreateCardReq struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Tier        string `form:"tier"`
	Attributes  string `form:"attributes"`
	BirthYear   string `form:"birthYear"`
	DeathYear   string `form:"deathYear"`
}

func (r CreateCardReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 5000)),
		validation.Field(&r.Tier, validation.By(validTier)),
		validation.Field(&r.Attributes, validation.By(validAttributes)),
	)
}

// UpdateCardReq là partial update: nil = field không được gửi lên
type UpdateCardReq struct {
	Name        *string `form:"name"`
	Description *string `form:"description"`
	Tier        *string `form:"tier"`
	Attributes  *string `form:"attributes"`
	BirthYear   *string `form:"birthYear"`
	DeathYear   *string `form:"deathYear"`
}

func (r UpdateCardReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(1, 5000)),
		validation.Field(&r.Tier, validation.By(validTier)),
		validation.Field(&r.Attributes, validation.By(validAttributes)),
	)
}

// ============================================================
// SHARED VALIDATORS
// ============================================================

func asString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case *string:
		if v != nil {
			return *v
		}
	}
	return ""
}

func validTier(value interface{}) error {
	s := asString(value)
	if s == "" {
		return nil // default về Common ở service
	}
	if !shared.Tier(s).Valid() {
		return errors.New("must be one of Common, Rare, Epic, Legendary, Mythic")
	}
	return nil
}

func validAttributes(value interface{}) error {
	s := asString(value)
	if s == "" {
		return nil
	}
	var a shared.Attributes
	if err := json.Unmarshal([]byte(s), &a); err != nil {
		return errors.New("must be a JSON attributes object")
	}
	if !a.InRange() {
		return errors.New("attribute values must be between 0 and 100")
	}
	return nil
}

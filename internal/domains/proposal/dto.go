package proposal

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"commanders-backend/internal/shared"
)

// Public submission đi qua multipart form (optional image file),
// nên field đến dưới dạng string như card DTOs.

type CreateProposalReq struct {
	Name              string `form:"name"`
	Description       string `form:"description"`
	Email             string `form:"email"`
	ProposerName      string `form:"proposerName"`
	ProposerInstagram string `form:"proposerInstagram"`
	Tier              string `form:"tier"`
	Attributes        string `form:"attributes"`
	BirthYear         string `form:"birthYear"`
	DeathYear         string `form:"deathYear"`
}

func (r CreateProposalReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 5000)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Tier, validation.By(validTier)),
		validation.Field(&r.Attributes, validation.By(validAttributes)),
	)
}

// UpdateProposalReq là partial update, pending-only
type UpdateProposalReq struct {
	Name              *string `form:"name"`
	Description       *string `form:"description"`
	Email             *string `form:"email"`
	ProposerName      *string `form:"proposerName"`
	ProposerInstagram *string `form:"proposerInstagram"`
	Tier              *string `form:"tier"`
	Attributes        *string `form:"attributes"`
	BirthYear         *string `form:"birthYear"`
	DeathYear         *string `form:"deathYear"`
}

func (r UpdateProposalReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(1, 5000)),
		validation.Field(&r.Tier, validation.By(validTier)),
		validation.Field(&r.Attributes, validation.By(validAttributes)),
	)
}

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
		return nil
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

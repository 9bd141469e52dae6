package settings

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// UpdateSettingsReq là JSON body của PUT /api/admin/settings
type UpdateSettingsReq struct {
	AdminEmail   string `json:"adminEmail"`
	FacebookURL  string `json:"facebookUrl"`
	TwitterURL   string `json:"twitterUrl"`
	InstagramURL string `json:"instagramUrl"`
	YoutubeURL   string `json:"youtubeUrl"`
	TiktokURL    string `json:"tiktokUrl"`
}

func (r UpdateSettingsReq) Validate() error {
	return validation.ValidateStruct(&r,
		// Contract gốc: non-empty và chứa "@", không full RFC validation
		validation.Field(&r.AdminEmail, validation.By(func(value interface{}) error {
			s, _ := value.(string)
			if strings.TrimSpace(s) == "" || !strings.Contains(s, "@") {
				return ErrInvalidEmail
			}
			return nil
		})),
		validation.Field(&r.FacebookURL, is.URL),
		validation.Field(&r.TwitterURL, is.URL),
		validation.Field(&r.InstagramURL, is.URL),
		validation.Field(&r.YoutubeURL, is.URL),
		validation.Field(&r.TiktokURL, is.URL),
	)
}

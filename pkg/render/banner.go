package render

import (
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Aggregate banner messages.
const (
	BannerFailure = "Please fix the highlighted fields and try again."
	BannerSuccess = "Registration looks good. Welcome to the myth (responsibly)."
	BannerReset   = "Form cleared."
)

// BannerFor returns the aggregate banner for a validation pass.
func BannerFor(result validation.Result) model.Banner {
	if result.Success {
		return model.Banner{Message: BannerSuccess, Tone: model.ToneSuccess}
	}
	return model.Banner{Message: BannerFailure, Tone: model.ToneError}
}

// ResetBanner is shown after the form is cleared.
func ResetBanner() model.Banner {
	return model.Banner{Message: BannerReset, Tone: model.ToneNone}
}

package validation

// Field messages surfaced next to each errored field.
const (
	MessageRequired               = "This field is required."
	MessageInvalidEmail           = "Please enter a valid email address."
	MessageDOBUnparseable         = "Please enter a valid date of birth."
	MessageDOBTooYoung            = "You must be at least 13 years old to register."
	MessageDOBTooOld              = "Please enter a reasonable age (≤ 100)."
	MessagePasswordTooShort       = "Password must be at least 8 characters."
	MessagePasswordMissingUpper   = "Password must include at least 1 uppercase letter."
	MessagePasswordMissingDigit   = "Password must include at least 1 number."
	MessagePasswordMismatch       = "Passwords do not match."
	MessageAcknowledgementMissing = "You must check this box to proceed."
)

// Age bounds accepted by ValidateDOB; both ends are inclusive.
const (
	MinimumAge = 13
	MaximumAge = 100
)

// MinimumPasswordLength is the shortest password ValidatePassword accepts.
const MinimumPasswordLength = 8

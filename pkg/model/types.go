package model

import "strings"

// FieldKey names a slot in the registration form.
type FieldKey string

const (
	FieldFirstName       FieldKey = "firstName"
	FieldLastName        FieldKey = "lastName"
	FieldDOB             FieldKey = "dob"
	FieldProgram         FieldKey = "program"
	FieldPassword        FieldKey = "password"
	FieldConfirmPassword FieldKey = "confirmPassword"
	FieldEmail           FieldKey = "email"
	FieldGender          FieldKey = "gender"
	FieldPhysics         FieldKey = "physics"
)

// Fields lists every form slot in display order.
var Fields = []FieldKey{
	FieldFirstName,
	FieldLastName,
	FieldDOB,
	FieldProgram,
	FieldPassword,
	FieldConfirmPassword,
	FieldEmail,
	FieldGender,
	FieldPhysics,
}

// RequiredFields lists the text/select slots that must be non-empty, in the
// order the required check visits them.
var RequiredFields = []FieldKey{
	FieldFirstName,
	FieldLastName,
	FieldDOB,
	FieldProgram,
	FieldPassword,
	FieldConfirmPassword,
	FieldEmail,
	FieldGender,
}

// Valid reports whether the key names a known form slot.
func (k FieldKey) Valid() bool {
	for _, key := range Fields {
		if key == k {
			return true
		}
	}
	return false
}

// Label returns the human-readable name of the field.
func (k FieldKey) Label() string {
	switch k {
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldDOB:
		return "Date of Birth"
	case FieldProgram:
		return "Program"
	case FieldPassword:
		return "Password"
	case FieldConfirmPassword:
		return "Confirm Password"
	case FieldEmail:
		return "Email"
	case FieldGender:
		return "Gender"
	case FieldPhysics:
		return "Physics Laws"
	default:
		return string(k)
	}
}

// IsAcknowledgement reports whether the slot is the checkbox-like field.
func (k FieldKey) IsAcknowledgement() bool {
	return k == FieldPhysics
}

// ParseFieldKey resolves a raw identifier into a FieldKey. Matching ignores
// case and surrounding whitespace.
func ParseFieldKey(raw string) (FieldKey, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, key := range Fields {
		if strings.EqualFold(string(key), trimmed) {
			return key, true
		}
	}
	return "", false
}

// Status captures the overall outcome of the most recent validation pass.
type Status int

const (
	StatusPristine Status = iota
	StatusInvalid
	StatusValid
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusValid:
		return "valid"
	default:
		return "pristine"
	}
}

// ErrorKind classifies a validation failure. Sub-kinds of the DOB and password
// families are distinct values; use Family to group them.
type ErrorKind string

const (
	KindRequiredFieldMissing   ErrorKind = "required_field_missing"
	KindInvalidEmailFormat     ErrorKind = "invalid_email_format"
	KindDOBUnparseable         ErrorKind = "dob_unparseable"
	KindDOBTooYoung            ErrorKind = "dob_too_young"
	KindDOBTooOld              ErrorKind = "dob_too_old"
	KindPasswordTooShort       ErrorKind = "password_too_short"
	KindPasswordMissingUpper   ErrorKind = "password_missing_uppercase"
	KindPasswordMissingDigit   ErrorKind = "password_missing_digit"
	KindPasswordMismatch       ErrorKind = "password_mismatch"
	KindAcknowledgementMissing ErrorKind = "acknowledgement_missing"
)

// ErrorFamily groups related error kinds.
type ErrorFamily string

const (
	FamilyRequiredFieldMissing   ErrorFamily = "RequiredFieldMissing"
	FamilyInvalidEmailFormat     ErrorFamily = "InvalidEmailFormat"
	FamilyInvalidDOB             ErrorFamily = "InvalidOrOutOfRangeDOB"
	FamilyWeakPassword           ErrorFamily = "WeakPassword"
	FamilyPasswordMismatch       ErrorFamily = "PasswordMismatch"
	FamilyAcknowledgementMissing ErrorFamily = "AcknowledgementMissing"
)

// Family returns the taxonomy group the kind belongs to.
func (k ErrorKind) Family() ErrorFamily {
	switch k {
	case KindRequiredFieldMissing:
		return FamilyRequiredFieldMissing
	case KindInvalidEmailFormat:
		return FamilyInvalidEmailFormat
	case KindDOBUnparseable, KindDOBTooYoung, KindDOBTooOld:
		return FamilyInvalidDOB
	case KindPasswordTooShort, KindPasswordMissingUpper, KindPasswordMissingDigit:
		return FamilyWeakPassword
	case KindPasswordMismatch:
		return FamilyPasswordMismatch
	case KindAcknowledgementMissing:
		return FamilyAcknowledgementMissing
	default:
		return ""
	}
}

// ValidationError is produced during a validation pass. It is data, not a Go
// error: validation failures are expected outcomes.
type ValidationError struct {
	Field   FieldKey  `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Program is a selectable catalog entry.
type Program struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Catalog holds the static option lists supplied at startup.
type Catalog struct {
	Programs []Program `json:"programs" yaml:"programs"`
	Genders  []string  `json:"genders" yaml:"genders"`
}

// ProgramLabel resolves a program value to its label. The scan is linear and
// the first match wins; unknown values fall back to the raw value.
func (c Catalog) ProgramLabel(value string) string {
	for _, program := range c.Programs {
		if program.Value == value {
			return program.Label
		}
	}
	return value
}

// Row is one label/value line of the confirmation summary.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Tone styles the aggregate banner.
type Tone string

const (
	ToneNone    Tone = ""
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

// Banner is the single aggregate message shown above the form.
type Banner struct {
	Message string `json:"message"`
	Tone    Tone   `json:"tone,omitempty"`
}

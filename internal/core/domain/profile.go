package domain

import (
	"fmt"
	"strings"
	"time"
)

// Canonical gender values.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Profile is a personal-details record, keyed by phone number. DOB is
// stored in its presentation form ("DD-MM-YYYY") after validation.
type Profile struct {
	ID        int64  `json:"id"`
	PhoneNo   string `json:"phone_no"`
	FullName  string `json:"full_name"`
	DOB       string `json:"dob"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	PhotoPath string `json:"photo_path"`
}

// ProfileUpdate is a full replacement of the mutable profile fields.
type ProfileUpdate struct {
	FullName  string
	DOB       string
	Age       int
	Gender    string
	Email     string
	Address   string
	PhotoPath string
}

// ProfilePatch carries optional field replacements. Nil means not
// supplied; supplied-but-zero values do not overwrite (preserved
// behavior of the shipped API).
type ProfilePatch struct {
	FullName  *string
	DOB       *string
	Age       *int
	Gender    *string
	Email     *string
	Address   *string
	PhotoPath *string
}

// NormalizeGender case-folds the input and canonicalizes it to Male,
// Female, or Other. Any other value fails with ErrInvalidGender.
func NormalizeGender(gender string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	case "other":
		return GenderOther, nil
	default:
		return "", fmt.Errorf("normalize gender %q: %w", gender, ErrInvalidGender)
	}
}

// NewDateOfBirth combines day/month/year into a DD-MM-YYYY string,
// rejecting combinations that are not real calendar dates (time.Date
// normalizes overflow, so a round-trip mismatch means invalid input).
func NewDateOfBirth(day, month, year int) (string, error) {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return "", fmt.Errorf("date of birth %d-%d-%d: %w", day, month, year, ErrInvalidDate)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return "", fmt.Errorf("date of birth %d-%d-%d: %w", day, month, year, ErrInvalidDate)
	}
	return fmt.Sprintf("%02d-%02d-%04d", day, month, year), nil
}

// CreateProfileRequest binds the multipart fields of POST /personal/submit-details/.
// The photo file part is handled separately by the handler.
type CreateProfileRequest struct {
	ContactNumber string `form:"contact_number" binding:"required"`
	FullName      string `form:"full_name" binding:"required"`
	DOBDay        int    `form:"dob_day" binding:"required"`
	DOBMonth      int    `form:"dob_month" binding:"required"`
	DOBYear       int    `form:"dob_year" binding:"required"`
	Age           int    `form:"age" binding:"required"`
	Gender        string `form:"gender" binding:"required"`
	Email         string `form:"email" binding:"required"`
	Address       string `form:"address" binding:"required"`
}

// UpdateProfileRequest binds the multipart fields of PUT /personal/update/:contact_number.
type UpdateProfileRequest struct {
	FullName string `form:"full_name" binding:"required"`
	DOBDay   int    `form:"dob_day" binding:"required"`
	DOBMonth int    `form:"dob_month" binding:"required"`
	DOBYear  int    `form:"dob_year" binding:"required"`
	Age      int    `form:"age" binding:"required"`
	Gender   string `form:"gender" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Address  string `form:"address" binding:"required"`
}

// PatchProfileRequest binds the optional multipart fields of
// PATCH /personal/patch/:contact_number. The date of birth is only
// replaced when all three parts are supplied.
type PatchProfileRequest struct {
	FullName *string `form:"full_name"`
	DOBDay   *int    `form:"dob_day"`
	DOBMonth *int    `form:"dob_month"`
	DOBYear  *int    `form:"dob_year"`
	Age      *int    `form:"age"`
	Gender   *string `form:"gender"`
	Email    *string `form:"email"`
	Address  *string `form:"address"`
}

// PhotoUpload is an uploaded photo payload read from a multipart part.
type PhotoUpload struct {
	Filename string
	Data     []byte
}

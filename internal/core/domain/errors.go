package domain

import "errors"

// Sentinel errors shared by the registries.
var (
	// ErrNotFound indicates no record exists for the requested key.
	// HTTP Status: 404 Not Found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey indicates a record with the same unique key already exists.
	// HTTP Status: 409 Conflict
	ErrDuplicateKey = errors.New("record already exists")

	// ErrInvalidGender indicates the gender value is not Male, Female, or Other.
	// HTTP Status: 400 Bad Request
	ErrInvalidGender = errors.New("gender must be Male, Female, or Other")

	// ErrInvalidDate indicates the day/month/year values do not form a real calendar date.
	// HTTP Status: 400 Bad Request
	ErrInvalidDate = errors.New("invalid date of birth")

	// ErrPhotoTooLarge indicates the uploaded profile photo exceeds the size limit.
	// HTTP Status: 400 Bad Request
	ErrPhotoTooLarge = errors.New("profile photo exceeds size limit")

	// ErrInvalidUserType indicates the account type is not a known value.
	// HTTP Status: 400 Bad Request
	ErrInvalidUserType = errors.New("invalid user type")

	// ErrInvalidCredentials indicates username/password verification failed.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid username or password")
)

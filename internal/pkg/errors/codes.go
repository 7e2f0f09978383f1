package errors

import "net/http"

var (
	ErrValidation = New(
		"VALIDATION_ERROR",
		"All the fields are required",
		http.StatusBadRequest,
	)

	ErrEmailAlreadyRegistered = New(
		"EMAIL_ALREADY_REGISTERED",
		"An agency with this email is already registered, please login",
		http.StatusConflict,
	)

	ErrAgencyNotFound = New(
		"AGENCY_NOT_FOUND",
		"Agency not found",
		http.StatusNotFound,
	)

	// ErrInvalidCredentials is returned for both an unknown email and a
	// password mismatch so login responses cannot be used to enumerate
	// registered accounts.
	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		http.StatusBadRequest,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Missing or invalid session token",
		http.StatusUnauthorized,
	)

	ErrAddressNotResolved = New(
		"GEOCODING_FAILED",
		"Address could not be resolved to coordinates",
		http.StatusBadRequest,
	)

	ErrInvalidLocation = New(
		"INVALID_LOCATION",
		"Location must be a GeoJSON Point with coordinates",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Registry and scheduling errors
	ErrInvalidTimeFormat = fmt.Errorf("invalid time format, expected HH:MM")
	ErrAlarmNotFound     = fmt.Errorf("alarm not found")
	ErrLockFailed        = fmt.Errorf("registry lock unavailable")

	// Persistence errors
	ErrIOFailure     = fmt.Errorf("filesystem operation failed")
	ErrSerialization = fmt.Errorf("serialization failed")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrNoActiveDevice     = fmt.Errorf("no active playback device")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// package services defines interface Service for music providers that can
// start playback on a connected device.
package services

import (
	"context"

	"golang.org/x/oauth2"
)

// Service defines the interface for music service providers (Spotify being
// the only implementation today) used to play alarm playlists remotely.
type Service interface {
	// Authenticate performs OAuth or API key authentication with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// Authenticated reports whether the service holds a usable token.
	Authenticated() bool

	// GetPlaylists retrieves all playlists for the authenticated user.
	GetPlaylists(ctx context.Context) ([]Playlist, error)

	// GetDevices retrieves the playback devices known to the service.
	GetDevices(ctx context.Context) ([]Device, error)

	// Play starts playback of the given context URI (playlist, album) on the
	// active device at the given volume percentage.
	Play(ctx context.Context, contextURI string, volume int) error

	// SetVolume sets the active device's volume percentage.
	SetVolume(ctx context.Context, volume int) error

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService extends Service for providers that use a server-side OAuth2
// authorization-code flow.
type OAuthService interface {
	Service

	// GetAuthURL returns the authorization URL for user login.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the OAuth2 config for the callback server.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate installs a previously obtained token, enabling automatic
	// refresh on expiry.
	OAuthenticate(ctx context.Context, token *oauth2.Token) error

	// SetTokenRefreshCallback registers a hook invoked whenever the access
	// token is refreshed, so callers can persist the new token.
	SetTokenRefreshCallback(callback func(*oauth2.Token))
}

// Playlist represents a music playlist from any service
type Playlist struct {
	ID          string
	Name        string
	Description string
	URI         string
	TrackCount  int
	Public      bool
}

// Device represents a playback target registered with the service.
type Device struct {
	ID     string
	Name   string
	Type   string
	Active bool
	Volume int
}

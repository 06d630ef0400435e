// Package services defines the [Service] interface for music streaming providers and implements it for Spotify.
//
// # Service Interface
//
// Providers expose the playback operations alarms need: listing playlists,
// listing devices, starting playback of a context URI, and adjusting volume.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 for authentication with automatic token refresh.
//
// The [oauth2.Config] client transparently refreshes expired tokens using the
// refresh token; [SpotifyService.SetTokenRefreshCallback] lets callers persist
// new tokens as they are minted. Requests are paced with a [rate.Limiter] to
// stay inside the Web API budget.
//
// # OAuth Service Extension
//
// The [OAuthService] interface extends Service for OAuth providers.
//
// [SpotifyService] implements this for the server-side authorization-code flow
// driven by the CLI and its local callback server.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrTokenExpired] : OAuth token expired, reauthorization needed
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrNoActiveDevice] : no playback device is available
package services

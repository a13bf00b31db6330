// Package services defines the [Catalog] interface for the music catalog and implements it for the Spotify Web API.
//
// # Catalog Interface
//
// Every resource kind (artist, playlist, show) exposes a details call and a paginated
// children call. Pages are returned as [Page] values; the Next* methods follow the
// absolute cursor URL the API hands back and return [ErrNoMorePages] after the last page.
//
// # Spotify Implementation
//
// [SpotifyService] issues plain GET requests through an authenticated [http.Client].
// [ClientCredentials] builds that client with the OAuth2 client-credentials flow; the
// [oauth2] transport refreshes the token automatically.
//
// An optional [rate.Limiter] paces requests on the client side. This only smooths bursts;
// server throttling still surfaces as [RateLimitError] for the caller to retry.
//
// # Error Handling
//
//   - [RateLimitError] : HTTP 429, RetryAfter parsed from the Retry-After header
//   - [APIError] : any other non-2xx status, wraps [shared.ErrAPIRequest]
//   - [shared.ErrAuthFailed] : token exchange failed
//   - [shared.ErrMissingCredentials] : client id or secret not configured
//
// # Playlist Entries
//
// Playlist entries can hold tracks or episodes. [PlaylistItem] decodes the payload once
// into a tagged variant ([ItemTrack], [ItemEpisode], [ItemOther]) so downstream code
// handles each case exhaustively.
package services

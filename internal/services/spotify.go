// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/coverwall/internal/shared"
	"golang.org/x/time/rate"
)

const (
	spotifyBaseURL = "https://api.spotify.com/v1"

	albumPageLimit    = 50
	playlistPageLimit = 100
	episodePageLimit  = 50
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type externalURLs map[string]string

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Genres       []string       `json:"genres"`
	Images       []SpotifyImage `json:"images"`
	ExternalURLs externalURLs   `json:"external_urls"`
	URI          string         `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	AlbumType    string          `json:"album_type"`
	AlbumGroup   string          `json:"album_group"`
	Artists      []SpotifyArtist `json:"artists"`
	ReleaseDate  string          `json:"release_date"`
	TotalTracks  int             `json:"total_tracks"`
	Images       []SpotifyImage  `json:"images"`
	ExternalURLs externalURLs    `json:"external_urls"`
	URI          string          `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	DurationMS   int             `json:"duration_ms"`
	ExternalURLs externalURLs    `json:"external_urls"`
	URI          string          `json:"uri"`
}

type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifyPlaylist represents a Spotify playlist without its entries.
type SpotifyPlaylist struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Owner        Owner          `json:"owner"`
	Images       []SpotifyImage `json:"images"`
	ExternalURLs externalURLs   `json:"external_urls"`
	URI          string         `json:"uri"`
}

// SpotifyShow represents a Spotify show (podcast).
type SpotifyShow struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Publisher     string         `json:"publisher"`
	Description   string         `json:"description"`
	TotalEpisodes int            `json:"total_episodes"`
	Images        []SpotifyImage `json:"images"`
	ExternalURLs  externalURLs   `json:"external_urls"`
	URI           string         `json:"uri"`
}

// SpotifyEpisode represents a show episode.
type SpotifyEpisode struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	ReleaseDate  string         `json:"release_date"`
	DurationMS   int            `json:"duration_ms"`
	Images       []SpotifyImage `json:"images"`
	ExternalURLs externalURLs   `json:"external_urls"`
	URI          string         `json:"uri"`
}

// RateLimitError is returned for HTTP 429 responses. RetryAfter carries the server's
// suggested delay from the Retry-After header, or zero when the header is absent.
type RateLimitError struct {
	RetryAfter time.Duration
	Endpoint   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("spotify API rate limited on %s: retry after %v", e.Endpoint, e.RetryAfter)
}

// APIError is returned for any other non-2xx response.
type APIError struct {
	Status   int
	Message  string
	Endpoint string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spotify API error on %s: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("spotify API error on %s: status %d: %s", e.Endpoint, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return shared.ErrAPIRequest
}

// SpotifyOpts configures a [SpotifyService].
type SpotifyOpts struct {
	BaseURL           string       // API root, defaults to https://api.spotify.com/v1
	Market            string       // ISO 3166-1 country code sent with market-aware calls
	AlbumGroups       string       // include_groups for artist albums; empty means all
	RequestsPerSecond float64      // client-side pacing; 0 disables
	HTTPClient        *http.Client // authenticated client, see [ClientCredentials]
}

// SpotifyService implements [Catalog] over the Spotify Web API.
//
// The HTTP client is expected to carry authentication (see [ClientCredentials]); the
// service itself only builds requests, paces them and maps responses.
type SpotifyService struct {
	baseURL     string
	market      string
	albumGroups string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// NewSpotifyService creates a new Spotify catalog client.
func NewSpotifyService(opts SpotifyOpts) *SpotifyService {
	if opts.BaseURL == "" {
		opts.BaseURL = spotifyBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &SpotifyService{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		market:      opts.Market,
		albumGroups: opts.AlbumGroups,
		httpClient:  opts.HTTPClient,
		limiter:     limiter,
	}
}

// endpoint joins path segments under the base URL and appends query.
func (s *SpotifyService) endpoint(query url.Values, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = url.PathEscape(seg)
	}

	u := s.baseURL + "/" + strings.Join(escaped, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (s *SpotifyService) marketQuery() url.Values {
	q := url.Values{}
	if s.market != "" {
		q.Set("market", s.market)
	}
	return q
}

// doRequest performs a GET against an absolute API URL and decodes the JSON body into result.
func (s *SpotifyService) doRequest(ctx context.Context, apiURL string, result any) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	endpoint := req.URL.Path

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return &RateLimitError{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
			Endpoint:   endpoint,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Status:   resp.StatusCode,
			Message:  decodeErrorMessage(resp.Body),
			Endpoint: endpoint,
		}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
		}
	}

	return nil
}

// parseRetryAfter accepts either delta-seconds or an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

func decodeErrorMessage(body io.Reader) string {
	var payload struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return ""
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	return payload.Error.Message
}

// nextPage follows the page cursor; the cursor is an absolute URL issued by the API.
func nextPage[T any](ctx context.Context, s *SpotifyService, page *Page[T]) (*Page[T], error) {
	if !page.HasNext() {
		return nil, ErrNoMorePages
	}

	var next Page[T]
	if err := s.doRequest(ctx, *page.Next, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Artist retrieves an artist by ID.
func (s *SpotifyService) Artist(ctx context.Context, artistID string) (*SpotifyArtist, error) {
	var artist SpotifyArtist
	if err := s.doRequest(ctx, s.endpoint(nil, "artists", artistID), &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// ArtistAlbums retrieves the first page of an artist's albums.
func (s *SpotifyService) ArtistAlbums(ctx context.Context, artistID string) (*Page[SpotifyAlbum], error) {
	q := s.marketQuery()
	q.Set("limit", strconv.Itoa(albumPageLimit))
	if s.albumGroups != "" {
		q.Set("include_groups", s.albumGroups)
	}

	var page Page[SpotifyAlbum]
	if err := s.doRequest(ctx, s.endpoint(q, "artists", artistID, "albums"), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// NextAlbums retrieves the album page after page.
func (s *SpotifyService) NextAlbums(ctx context.Context, page *Page[SpotifyAlbum]) (*Page[SpotifyAlbum], error) {
	return nextPage(ctx, s, page)
}

// Playlist retrieves a playlist's details without its entries.
func (s *SpotifyService) Playlist(ctx context.Context, playlistID string) (*SpotifyPlaylist, error) {
	q := s.marketQuery()
	q.Set("fields", "id,name,description,owner(id,display_name),images,external_urls,uri")

	var playlist SpotifyPlaylist
	if err := s.doRequest(ctx, s.endpoint(q, "playlists", playlistID), &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// PlaylistItems retrieves the first page of a playlist's entries, tracks and episodes alike.
func (s *SpotifyService) PlaylistItems(ctx context.Context, playlistID string) (*Page[PlaylistItem], error) {
	q := s.marketQuery()
	q.Set("limit", strconv.Itoa(playlistPageLimit))
	q.Set("additional_types", "track,episode")

	var page Page[PlaylistItem]
	if err := s.doRequest(ctx, s.endpoint(q, "playlists", playlistID, "tracks"), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// NextPlaylistItems retrieves the playlist entry page after page.
func (s *SpotifyService) NextPlaylistItems(ctx context.Context, page *Page[PlaylistItem]) (*Page[PlaylistItem], error) {
	return nextPage(ctx, s, page)
}

// Show retrieves a show by ID. Spotify treats shows as unavailable without a market
// when using client credentials, so the configured market is always sent.
func (s *SpotifyService) Show(ctx context.Context, showID string) (*SpotifyShow, error) {
	var show SpotifyShow
	if err := s.doRequest(ctx, s.endpoint(s.marketQuery(), "shows", showID), &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// ShowEpisodes retrieves the first page of a show's episodes.
func (s *SpotifyService) ShowEpisodes(ctx context.Context, showID string) (*Page[SpotifyEpisode], error) {
	q := s.marketQuery()
	q.Set("limit", strconv.Itoa(episodePageLimit))

	var page Page[SpotifyEpisode]
	if err := s.doRequest(ctx, s.endpoint(q, "shows", showID, "episodes"), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// NextShowEpisodes retrieves the episode page after page.
func (s *SpotifyService) NextShowEpisodes(ctx context.Context, page *Page[SpotifyEpisode]) (*Page[SpotifyEpisode], error) {
	return nextPage(ctx, s, page)
}

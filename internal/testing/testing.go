// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/coverwall/internal/services"
)

// MockCatalog is an in-memory [services.Catalog].
//
// Children are served as pages in the order given. Errs fails any call that touches the
// keyed id, and Throttle makes the next n calls return a [services.RateLimitError].
type MockCatalog struct {
	Artists   map[string]*services.SpotifyArtist
	Playlists map[string]*services.SpotifyPlaylist
	Shows     map[string]*services.SpotifyShow

	AlbumPages    map[string][][]services.SpotifyAlbum
	PlaylistPages map[string][][]services.PlaylistItem
	EpisodePages  map[string][][]services.SpotifyEpisode

	Errs       map[string]error
	Throttle   int
	RetryAfter time.Duration
	Calls      int
}

// NewMockCatalog creates an empty [MockCatalog].
func NewMockCatalog() *MockCatalog {
	return &MockCatalog{
		Artists:       map[string]*services.SpotifyArtist{},
		Playlists:     map[string]*services.SpotifyPlaylist{},
		Shows:         map[string]*services.SpotifyShow{},
		AlbumPages:    map[string][][]services.SpotifyAlbum{},
		PlaylistPages: map[string][][]services.PlaylistItem{},
		EpisodePages:  map[string][][]services.SpotifyEpisode{},
		Errs:          map[string]error{},
	}
}

func (m *MockCatalog) call(id, endpoint string) error {
	m.Calls++
	if m.Throttle > 0 {
		m.Throttle--
		return &services.RateLimitError{RetryAfter: m.RetryAfter, Endpoint: endpoint}
	}
	if err, ok := m.Errs[id]; ok {
		return err
	}
	return nil
}

func (m *MockCatalog) Artist(ctx context.Context, artistID string) (*services.SpotifyArtist, error) {
	if err := m.call(artistID, "artists/"+artistID); err != nil {
		return nil, err
	}
	if a, ok := m.Artists[artistID]; ok {
		return a, nil
	}
	return nil, notFound("artist", artistID)
}

func (m *MockCatalog) ArtistAlbums(ctx context.Context, artistID string) (*services.Page[services.SpotifyAlbum], error) {
	if err := m.call(artistID, "artists/"+artistID+"/albums"); err != nil {
		return nil, err
	}
	return pageAt(artistID, m.AlbumPages[artistID], 0), nil
}

func (m *MockCatalog) NextAlbums(ctx context.Context, page *services.Page[services.SpotifyAlbum]) (*services.Page[services.SpotifyAlbum], error) {
	id, n, err := parseCursor(page)
	if err != nil {
		return nil, err
	}
	if err := m.call(id, "artists/"+id+"/albums"); err != nil {
		return nil, err
	}
	return pageAt(id, m.AlbumPages[id], n), nil
}

func (m *MockCatalog) Playlist(ctx context.Context, playlistID string) (*services.SpotifyPlaylist, error) {
	if err := m.call(playlistID, "playlists/"+playlistID); err != nil {
		return nil, err
	}
	if p, ok := m.Playlists[playlistID]; ok {
		return p, nil
	}
	return nil, notFound("playlist", playlistID)
}

func (m *MockCatalog) PlaylistItems(ctx context.Context, playlistID string) (*services.Page[services.PlaylistItem], error) {
	if err := m.call(playlistID, "playlists/"+playlistID+"/tracks"); err != nil {
		return nil, err
	}
	return pageAt(playlistID, m.PlaylistPages[playlistID], 0), nil
}

func (m *MockCatalog) NextPlaylistItems(ctx context.Context, page *services.Page[services.PlaylistItem]) (*services.Page[services.PlaylistItem], error) {
	id, n, err := parseCursor(page)
	if err != nil {
		return nil, err
	}
	if err := m.call(id, "playlists/"+id+"/tracks"); err != nil {
		return nil, err
	}
	return pageAt(id, m.PlaylistPages[id], n), nil
}

func (m *MockCatalog) Show(ctx context.Context, showID string) (*services.SpotifyShow, error) {
	if err := m.call(showID, "shows/"+showID); err != nil {
		return nil, err
	}
	if s, ok := m.Shows[showID]; ok {
		return s, nil
	}
	return nil, notFound("show", showID)
}

func (m *MockCatalog) ShowEpisodes(ctx context.Context, showID string) (*services.Page[services.SpotifyEpisode], error) {
	if err := m.call(showID, "shows/"+showID+"/episodes"); err != nil {
		return nil, err
	}
	return pageAt(showID, m.EpisodePages[showID], 0), nil
}

func (m *MockCatalog) NextShowEpisodes(ctx context.Context, page *services.Page[services.SpotifyEpisode]) (*services.Page[services.SpotifyEpisode], error) {
	id, n, err := parseCursor(page)
	if err != nil {
		return nil, err
	}
	if err := m.call(id, "shows/"+id+"/episodes"); err != nil {
		return nil, err
	}
	return pageAt(id, m.EpisodePages[id], n), nil
}

func notFound(kind, id string) error {
	return &services.APIError{Status: 404, Message: "non existing id", Endpoint: kind + "s/" + id}
}

// pageAt builds page n of pages, with a "id|n+1" cursor when more pages follow.
// Limit is the largest page size, as if every request asked for that many items.
func pageAt[T any](id string, pages [][]T, n int) *services.Page[T] {
	total, offset, limit := 0, 0, 0
	for i, p := range pages {
		if i < n {
			offset += len(p)
		}
		total += len(p)
		limit = max(limit, len(p))
	}

	page := &services.Page[T]{Items: []T{}, Total: total, Limit: limit, Offset: offset}
	if n < len(pages) {
		page.Items = pages[n]
	}
	if n+1 < len(pages) {
		next := id + "|" + strconv.Itoa(n+1)
		page.Next = &next
	}
	return page
}

func parseCursor[T any](page *services.Page[T]) (string, int, error) {
	if !page.HasNext() {
		return "", 0, services.ErrNoMorePages
	}
	id, n, ok := strings.Cut(*page.Next, "|")
	if !ok {
		return "", 0, fmt.Errorf("malformed cursor %q", *page.Next)
	}
	idx, err := strconv.Atoi(n)
	if err != nil {
		return "", 0, fmt.Errorf("malformed cursor %q: %w", *page.Next, err)
	}
	return id, idx, nil
}

// Album builds a catalog album with a single image and an open link.
func Album(id, name string) services.SpotifyAlbum {
	return services.SpotifyAlbum{
		ID:           id,
		Name:         name,
		Images:       []services.SpotifyImage{{URL: "https://i.scdn.co/image/" + id, Width: 640, Height: 640}},
		ExternalURLs: map[string]string{"spotify": "https://open.spotify.com/album/" + id},
	}
}

// Episode builds a show episode with an open link.
func Episode(id, name string) services.SpotifyEpisode {
	return services.SpotifyEpisode{
		ID:           id,
		Name:         name,
		ExternalURLs: map[string]string{"spotify": "https://open.spotify.com/episode/" + id},
	}
}

// TrackItem builds a playlist entry holding a track on album.
func TrackItem(trackID string, album services.SpotifyAlbum) services.PlaylistItem {
	return services.PlaylistItem{
		Kind:  services.ItemTrack,
		Type:  "track",
		Track: &services.SpotifyTrack{ID: trackID, Type: "track", Album: album},
	}
}

// EpisodeItem builds a playlist entry holding an episode.
func EpisodeItem(episode services.SpotifyEpisode) services.PlaylistItem {
	return services.PlaylistItem{Kind: services.ItemEpisode, Type: "episode", Episode: &episode}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// MustWriteFile writes content to path, creating parent directories.
func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

// package services defines interface Catalog for reading the Spotify Web API catalog
package services

import (
	"context"
	"errors"
)

// ErrNoMorePages is returned when asking for the page after the last one.
var ErrNoMorePages = errors.New("no more pages")

// Catalog defines the read-only catalog calls a retrieval needs: a details call and a
// paginated children call per resource kind, plus a way to follow each page cursor.
type Catalog interface {
	// Artist retrieves an artist's name and images.
	Artist(ctx context.Context, artistID string) (*SpotifyArtist, error)

	// ArtistAlbums retrieves the first page of an artist's albums.
	ArtistAlbums(ctx context.Context, artistID string) (*Page[SpotifyAlbum], error)

	// NextAlbums follows page.Next. Returns [ErrNoMorePages] after the last page.
	NextAlbums(ctx context.Context, page *Page[SpotifyAlbum]) (*Page[SpotifyAlbum], error)

	// Playlist retrieves a playlist's name and images.
	Playlist(ctx context.Context, playlistID string) (*SpotifyPlaylist, error)

	// PlaylistItems retrieves the first page of a playlist's entries.
	PlaylistItems(ctx context.Context, playlistID string) (*Page[PlaylistItem], error)

	// NextPlaylistItems follows page.Next. Returns [ErrNoMorePages] after the last page.
	NextPlaylistItems(ctx context.Context, page *Page[PlaylistItem]) (*Page[PlaylistItem], error)

	// Show retrieves a show's name and images.
	Show(ctx context.Context, showID string) (*SpotifyShow, error)

	// ShowEpisodes retrieves the first page of a show's episodes.
	ShowEpisodes(ctx context.Context, showID string) (*Page[SpotifyEpisode], error)

	// NextShowEpisodes follows page.Next. Returns [ErrNoMorePages] after the last page.
	NextShowEpisodes(ctx context.Context, page *Page[SpotifyEpisode]) (*Page[SpotifyEpisode], error)
}

// Page is one offset-paginated response.
type Page[T any] struct {
	Items    []T     `json:"items"`
	Total    int     `json:"total"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// HasNext reports whether the response carries a cursor to a following page.
func (p *Page[T]) HasNext() bool {
	return p != nil && p.Next != nil && *p.Next != ""
}

package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/coverwall/internal/models"
	"github.com/desertthunder/coverwall/internal/services"
	"github.com/desertthunder/coverwall/internal/shared"
)

// Retriever turns one input descriptor into a [models.RetrievalResult].
type Retriever interface {
	Retrieve(ctx context.Context, catalog services.Catalog, d models.InputDescriptor) (*models.RetrievalResult, error)
}

// ArtistRetriever resolves an artist and every album it appears on.
type ArtistRetriever struct {
	exec *Executor
}

// PlaylistRetriever resolves a playlist and the albums of its tracks.
type PlaylistRetriever struct {
	exec *Executor
}

// ShowRetriever resolves a show and its episodes.
type ShowRetriever struct {
	exec *Executor
}

// NewRetrievers returns the retriever for each supported [models.SourceType].
func NewRetrievers(exec *Executor) map[models.SourceType]Retriever {
	return map[models.SourceType]Retriever{
		models.SourceArtist:   &ArtistRetriever{exec: exec},
		models.SourcePlaylist: &PlaylistRetriever{exec: exec},
		models.SourceShow:     &ShowRetriever{exec: exec},
	}
}

func (r *ArtistRetriever) Retrieve(ctx context.Context, catalog services.Catalog, d models.InputDescriptor) (*models.RetrievalResult, error) {
	artist, err := Execute(ctx, r.exec, func(ctx context.Context) (*services.SpotifyArtist, error) {
		return catalog.Artist(ctx, d.SourceID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get artist %s: %w", d.SourceID, err)
	}

	first, err := Execute(ctx, r.exec, func(ctx context.Context) (*services.Page[services.SpotifyAlbum], error) {
		return catalog.ArtistAlbums(ctx, d.SourceID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get albums for artist %s: %w", d.SourceID, err)
	}

	albums, err := CollectAll(ctx, r.exec, first, catalog.NextAlbums)
	if err != nil {
		return nil, fmt.Errorf("failed to page albums for artist %s: %w", d.SourceID, err)
	}

	items := make([]models.NormalizedItem, 0, len(albums))
	for _, album := range albums {
		items = append(items, NormalizeAlbum(album))
	}

	return finish(d, artist.Name, artist.Images, items), nil
}

func (r *PlaylistRetriever) Retrieve(ctx context.Context, catalog services.Catalog, d models.InputDescriptor) (*models.RetrievalResult, error) {
	playlist, err := Execute(ctx, r.exec, func(ctx context.Context) (*services.SpotifyPlaylist, error) {
		return catalog.Playlist(ctx, d.SourceID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist %s: %w", d.SourceID, err)
	}

	first, err := Execute(ctx, r.exec, func(ctx context.Context) (*services.Page[services.PlaylistItem], error) {
		return catalog.PlaylistItems(ctx, d.SourceID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get tracks for playlist %s: %w", d.SourceID, err)
	}

	entries, err := CollectAll(ctx, r.exec, first, catalog.NextPlaylistItems)
	if err != nil {
		return nil, fmt.Errorf("failed to page tracks for playlist %s: %w", d.SourceID, err)
	}

	albums, err := PlaylistAlbums(entries)
	if err != nil {
		return nil, fmt.Errorf("playlist %s: %w", d.SourceID, err)
	}

	items := make([]models.NormalizedItem, 0, len(albums))
	for _, album := range albums {
		items = append(items, NormalizeAlbum(album))
	}

	return finish(d, playlist.Name, playlist.Images, items), nil
}

func (r *ShowRetriever) Retrieve(ctx context.Context, catalog services.Catalog, d models.InputDescriptor) (*models.RetrievalResult, error) {
	show, err := Execute(ctx, r.exec, func(ctx context.Context) (*services.SpotifyShow, error) {
		return catalog.Show(ctx, d.SourceID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get show %s: %w", d.SourceID, err)
	}

	first, err := Execute(ctx, r.exec, func(ctx context.Context) (*services.Page[services.SpotifyEpisode], error) {
		return catalog.ShowEpisodes(ctx, d.SourceID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get episodes for show %s: %w", d.SourceID, err)
	}

	episodes, err := CollectAll(ctx, r.exec, first, catalog.NextShowEpisodes)
	if err != nil {
		return nil, fmt.Errorf("failed to page episodes for show %s: %w", d.SourceID, err)
	}

	items := make([]models.NormalizedItem, 0, len(episodes))
	for _, episode := range episodes {
		items = append(items, NormalizeEpisode(episode))
	}

	return finish(d, show.Name, show.Images, items), nil
}

// finish dedupes then filters items and assembles the result.
func finish(d models.InputDescriptor, name string, images []services.SpotifyImage, items []models.NormalizedItem) *models.RetrievalResult {
	items = Filter(Dedupe(items), d.IgnoreIDs, d.IgnoreNameSubstrings)
	return &models.RetrievalResult{
		ArtistLike: models.NewArtistLikeOutput(d, name, NormalizeImages(images)),
		Items:      items,
	}
}

// unknownTypeError reports a descriptor type with no retriever.
func unknownTypeError(t models.SourceType) error {
	return fmt.Errorf("%w: %q (expected %s, %s or %s)",
		shared.ErrUnknownInputType, string(t), models.SourceArtist, models.SourcePlaylist, models.SourceShow)
}

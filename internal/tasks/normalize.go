package tasks

import (
	"fmt"
	"strings"

	"github.com/desertthunder/coverwall/internal/models"
	"github.com/desertthunder/coverwall/internal/services"
	"github.com/desertthunder/coverwall/internal/shared"
)

// openURLKey selects the link the front-end opens from external_urls.
const openURLKey = "spotify"

// NormalizeImages converts API images, keeping their order.
func NormalizeImages(images []services.SpotifyImage) []models.MediaImage {
	out := make([]models.MediaImage, 0, len(images))
	for _, img := range images {
		out = append(out, models.MediaImage{URL: img.URL, Width: img.Width, Height: img.Height})
	}
	return out
}

// NormalizeAlbum maps an album onto a [models.NormalizedItem].
func NormalizeAlbum(album services.SpotifyAlbum) models.NormalizedItem {
	return models.NormalizedItem{
		ID:        album.ID,
		Name:      album.Name,
		URLToOpen: album.ExternalURLs[openURLKey],
		Images:    NormalizeImages(album.Images),
	}
}

// NormalizeEpisode maps a show episode onto a [models.NormalizedItem].
func NormalizeEpisode(episode services.SpotifyEpisode) models.NormalizedItem {
	return models.NormalizedItem{
		ID:        episode.ID,
		Name:      episode.Name,
		URLToOpen: episode.ExternalURLs[openURLKey],
		Images:    NormalizeImages(episode.Images),
	}
}

// PlaylistAlbums extracts the album behind every playlist track.
//
// Local files have no catalog album and are skipped. An episode or any other payload
// fails the whole playlist.
func PlaylistAlbums(entries []services.PlaylistItem) ([]services.SpotifyAlbum, error) {
	albums := make([]services.SpotifyAlbum, 0, len(entries))
	for i, entry := range entries {
		switch entry.Kind {
		case services.ItemTrack:
			if entry.IsLocal {
				continue
			}
			albums = append(albums, entry.Track.Album)
		case services.ItemEpisode:
			return nil, fmt.Errorf("%w: entry %d is an episode (%s); episodes inside playlists are not supported",
				shared.ErrUnsupportedShape, i, entry.Episode.ID)
		default:
			return nil, fmt.Errorf("%w: entry %d has unexpected type %q", shared.ErrUnsupportedShape, i, entry.Type)
		}
	}
	return albums, nil
}

// Dedupe drops items whose id was already seen, keeping first occurrences in order.
func Dedupe(items []models.NormalizedItem) []models.NormalizedItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]models.NormalizedItem, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Filter removes items whose id is in ignoreIDs or whose name contains any of
// ignoreNameSubstrings. Matching is case-sensitive; empty substrings are ignored.
func Filter(items []models.NormalizedItem, ignoreIDs, ignoreNameSubstrings []string) []models.NormalizedItem {
	ignored := make(map[string]struct{}, len(ignoreIDs))
	for _, id := range ignoreIDs {
		ignored[id] = struct{}{}
	}

	out := make([]models.NormalizedItem, 0, len(items))
	for _, item := range items {
		if _, ok := ignored[item.ID]; ok {
			continue
		}
		if containsAny(item.Name, ignoreNameSubstrings) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func containsAny(name string, substrings []string) bool {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(name, sub) {
			return true
		}
	}
	return false
}

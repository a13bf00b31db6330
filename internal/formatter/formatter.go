// package formatter writes retrieval results to disk for the front-end and renders them for the terminal
package formatter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/coverwall/internal/models"
	"github.com/desertthunder/coverwall/internal/shared"
)

const (
	ArtistFile = "artist.json"
	AlbumsFile = "albums.json"
	IndexFile  = "index.json"
)

// WriteResult contains the paths of files created by [WriteBatch]
type WriteResult struct {
	Directory string
	Files     []string
}

// WriteBatch replaces baseDir with one directory per result.
//
// Any existing baseDir is removed first. Each result gets {baseDir}/{id}/artist.json and
// {baseDir}/{id}/albums.json, where id is the descriptor's httpFriendlyShortName.
func WriteBatch(baseDir string, results []models.RetrievalResult) (*WriteResult, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("%w: output directory is empty", shared.ErrInvalidInput)
	}
	for _, r := range results {
		if err := models.ValidateDirName(r.ID()); err != nil {
			return nil, err
		}
	}

	if err := os.RemoveAll(baseDir); err != nil {
		return nil, fmt.Errorf("failed to clear %s: %w", baseDir, err)
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	out := &WriteResult{Directory: baseDir, Files: []string{}}
	for _, r := range results {
		dir := filepath.Join(baseDir, r.ID())
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", r.ID(), err)
		}

		items := r.Items
		if items == nil {
			items = []models.NormalizedItem{}
		}

		artistPath := filepath.Join(dir, ArtistFile)
		if err := writeJSON(artistPath, r.ArtistLike); err != nil {
			return nil, err
		}
		albumsPath := filepath.Join(dir, AlbumsFile)
		if err := writeJSON(albumsPath, items); err != nil {
			return nil, err
		}

		out.Files = append(out.Files, artistPath, albumsPath)
	}

	return out, nil
}

// WriteIndex writes {baseDir}/index.json listing every result's artist entry in batch order.
func WriteIndex(baseDir string, results []models.RetrievalResult) (string, error) {
	entries := make([]models.ArtistLikeOutput, 0, len(results))
	for _, r := range results {
		entries = append(entries, r.ArtistLike)
	}

	path := filepath.Join(baseDir, IndexFile)
	if err := writeJSON(path, entries); err != nil {
		return "", err
	}
	return path, nil
}

// ReadIndex loads the artist entries listed in {baseDir}/index.json.
func ReadIndex(baseDir string) ([]models.ArtistLikeOutput, error) {
	var entries []models.ArtistLikeOutput
	if err := readJSON(filepath.Join(baseDir, IndexFile), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReadBatch loads the artist and item files written for id under baseDir.
func ReadBatch(baseDir, id string) (*models.RetrievalResult, error) {
	dir := filepath.Join(baseDir, id)

	var r models.RetrievalResult
	if err := readJSON(filepath.Join(dir, ArtistFile), &r.ArtistLike); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, AlbumsFile), &r.Items); err != nil {
		return nil, err
	}
	return &r, nil
}

func writeJSON(path string, v any) error {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := shared.UnmarshalJSON(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

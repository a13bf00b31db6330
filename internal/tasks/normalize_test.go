package tasks

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/desertthunder/coverwall/internal/models"
	"github.com/desertthunder/coverwall/internal/services"
	"github.com/desertthunder/coverwall/internal/shared"
	tu "github.com/desertthunder/coverwall/internal/testing"
)

func item(id, name string) models.NormalizedItem {
	return models.NormalizedItem{ID: id, Name: name}
}

func ids(items []models.NormalizedItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestNormalizeAlbum(t *testing.T) {
	got := NormalizeAlbum(tu.Album("al1", "Geogaddi"))

	if got.ID != "al1" || got.Name != "Geogaddi" {
		t.Errorf("unexpected identity: %+v", got)
	}
	if got.URLToOpen != "https://open.spotify.com/album/al1" {
		t.Errorf("unexpected urlToOpen: %s", got.URLToOpen)
	}
	want := []models.MediaImage{{URL: "https://i.scdn.co/image/al1", Width: 640, Height: 640}}
	if !reflect.DeepEqual(got.Images, want) {
		t.Errorf("expected images %v, got %v", want, got.Images)
	}
}

func TestNormalizeEpisode(t *testing.T) {
	got := NormalizeEpisode(tu.Episode("e1", "Pilot"))

	if got.URLToOpen != "https://open.spotify.com/episode/e1" {
		t.Errorf("unexpected urlToOpen: %s", got.URLToOpen)
	}
	if got.Images == nil || len(got.Images) != 0 {
		t.Errorf("expected empty non-nil images, got %v", got.Images)
	}
}

func TestNormalizeImages(t *testing.T) {
	in := []services.SpotifyImage{
		{URL: "big", Width: 640, Height: 640},
		{URL: "small", Width: 64, Height: 64},
	}
	got := NormalizeImages(in)
	if len(got) != 2 || got[0].URL != "big" || got[1].URL != "small" {
		t.Errorf("expected order to be preserved, got %v", got)
	}
}

func TestPlaylistAlbums(t *testing.T) {
	t.Run("extracts track albums in order", func(t *testing.T) {
		entries := []services.PlaylistItem{
			tu.TrackItem("t1", tu.Album("a", "A")),
			tu.TrackItem("t2", tu.Album("b", "B")),
			tu.TrackItem("t3", tu.Album("a", "A")),
		}
		albums, err := PlaylistAlbums(entries)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(albums) != 3 || albums[0].ID != "a" || albums[1].ID != "b" || albums[2].ID != "a" {
			t.Errorf("unexpected albums: %+v", albums)
		}
	})

	t.Run("skips local tracks", func(t *testing.T) {
		local := tu.TrackItem("", services.SpotifyAlbum{})
		local.IsLocal = true
		albums, err := PlaylistAlbums([]services.PlaylistItem{local, tu.TrackItem("t1", tu.Album("a", "A"))})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(albums) != 1 || albums[0].ID != "a" {
			t.Errorf("expected only album a, got %+v", albums)
		}
	})

	t.Run("rejects episodes", func(t *testing.T) {
		entries := []services.PlaylistItem{
			tu.TrackItem("t1", tu.Album("a", "A")),
			tu.EpisodeItem(tu.Episode("e1", "Pilot")),
		}
		_, err := PlaylistAlbums(entries)
		if !errors.Is(err, shared.ErrUnsupportedShape) {
			t.Fatalf("expected ErrUnsupportedShape, got %v", err)
		}
		if !strings.Contains(err.Error(), "episode") {
			t.Errorf("expected error to mention episode, got %v", err)
		}
	})

	t.Run("rejects other payloads", func(t *testing.T) {
		_, err := PlaylistAlbums([]services.PlaylistItem{{Kind: services.ItemOther, Type: "audiobook"}})
		if !errors.Is(err, shared.ErrUnsupportedShape) {
			t.Fatalf("expected ErrUnsupportedShape, got %v", err)
		}
		if !strings.Contains(err.Error(), "audiobook") {
			t.Errorf("expected error to name the type, got %v", err)
		}
	})
}

func TestDedupe(t *testing.T) {
	tt := []struct {
		name string
		in   []models.NormalizedItem
		want []string
	}{
		{name: "no duplicates", in: []models.NormalizedItem{item("1", "a"), item("2", "b")}, want: []string{"1", "2"}},
		{name: "keeps first occurrence", in: []models.NormalizedItem{item("1", "first"), item("2", "b"), item("1", "second")}, want: []string{"1", "2"}},
		{name: "all duplicates", in: []models.NormalizedItem{item("x", "a"), item("x", "b"), item("x", "c")}, want: []string{"x"}},
		{name: "empty", in: nil, want: []string{}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := Dedupe(tc.in)
			if !reflect.DeepEqual(ids(got), tc.want) {
				t.Errorf("expected %v, got %v", tc.want, ids(got))
			}
		})
	}

	t.Run("first occurrence wins", func(t *testing.T) {
		got := Dedupe([]models.NormalizedItem{item("1", "first"), item("1", "second")})
		if got[0].Name != "first" {
			t.Errorf("expected first, got %s", got[0].Name)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		in := []models.NormalizedItem{item("1", "a"), item("2", "b"), item("1", "c"), item("3", "d"), item("2", "e")}
		once := Dedupe(in)
		twice := Dedupe(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("expected Dedupe to be idempotent, got %v then %v", ids(once), ids(twice))
		}
	})
}

func TestFilter(t *testing.T) {
	items := []models.NormalizedItem{
		item("1", "Music Has the Right to Children"),
		item("2", "Geogaddi (Live)"),
		item("3", "Tomorrow's Harvest"),
		item("4", "Campfire Headphase - live"),
	}

	tt := []struct {
		name       string
		ignoreIDs  []string
		substrings []string
		want       []string
	}{
		{name: "no rules", want: []string{"1", "2", "3", "4"}},
		{name: "by id", ignoreIDs: []string{"3"}, want: []string{"1", "2", "4"}},
		{name: "unknown id", ignoreIDs: []string{"nope"}, want: []string{"1", "2", "3", "4"}},
		{name: "by substring", substrings: []string{"(Live)"}, want: []string{"1", "3", "4"}},
		{name: "substring is case-sensitive", substrings: []string{"Live"}, want: []string{"1", "3", "4"}},
		{name: "lowercase substring", substrings: []string{"live"}, want: []string{"1", "2", "3"}},
		{name: "empty substring ignored", substrings: []string{""}, want: []string{"1", "2", "3", "4"}},
		{name: "id and substring", ignoreIDs: []string{"1"}, substrings: []string{"Harvest"}, want: []string{"2", "4"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(items, tc.ignoreIDs, tc.substrings)
			if !reflect.DeepEqual(ids(got), tc.want) {
				t.Errorf("expected %v, got %v", tc.want, ids(got))
			}
		})
	}

	t.Run("keeps exactly the items no rule matches", func(t *testing.T) {
		ignoreIDs := []string{"2"}
		substrings := []string{"Children", "x"}
		got := Filter(items, ignoreIDs, substrings)

		kept := map[string]bool{}
		for _, it := range got {
			kept[it.ID] = true
		}
		for _, it := range items {
			excluded := it.ID == "2" || strings.Contains(it.Name, "Children") || strings.Contains(it.Name, "x")
			if kept[it.ID] == excluded {
				t.Errorf("item %s: kept=%v excluded=%v", it.ID, kept[it.ID], excluded)
			}
		}
	})
}

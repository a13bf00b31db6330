package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/coverwall/internal/shared"
)

func TestParseDescriptors(t *testing.T) {
	t.Run("decodes all fields", func(t *testing.T) {
		data := `[{
			"shortName": "Boards",
			"httpFriendlyShortName": "boards",
			"type": "artist",
			"id": "2VAvhf61GgLYmC6C8anyX1",
			"icon": "boards.svg",
			"coverCenterX": 0.5,
			"coverCenterY": 0.25,
			"altCoverCenterX": 0.1,
			"coverColorA": "#112233",
			"ignoreIds": ["a1"],
			"ignoreNameSubstrings": ["Remix"]
		}]`

		got, err := ParseDescriptors([]byte(data))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 descriptor, got %d", len(got))
		}

		d := got[0]
		if d.Type != SourceArtist {
			t.Errorf("expected type artist, got %s", d.Type)
		}
		if d.SourceID != "2VAvhf61GgLYmC6C8anyX1" {
			t.Errorf("unexpected source id %s", d.SourceID)
		}
		if d.AltCoverCenterX == nil || *d.AltCoverCenterX != 0.1 {
			t.Errorf("expected altCoverCenterX 0.1, got %v", d.AltCoverCenterX)
		}
		if d.AltCoverCenterY != nil {
			t.Errorf("expected altCoverCenterY absent, got %v", *d.AltCoverCenterY)
		}
		if len(d.IgnoreIDs) != 1 || d.IgnoreIDs[0] != "a1" {
			t.Errorf("unexpected ignoreIds %v", d.IgnoreIDs)
		}
	})

	t.Run("matches field names case-insensitively", func(t *testing.T) {
		data := `[{"SHORTNAME": "A", "HttpFriendlyShortName": "a", "Type": "show", "ID": "x"}]`

		got, err := ParseDescriptors([]byte(data))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got[0].ShortName != "A" || got[0].Type != SourceShow || got[0].SourceID != "x" {
			t.Errorf("unexpected descriptor %+v", got[0])
		}
	})

	t.Run("null ignore lists become empty", func(t *testing.T) {
		data := `[{"shortName": "A", "httpFriendlyShortName": "a", "type": "playlist", "id": "x",
			"ignoreIds": null, "icon": null}]`

		got, err := ParseDescriptors([]byte(data))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got[0].IgnoreIDs == nil || len(got[0].IgnoreIDs) != 0 {
			t.Errorf("expected empty ignoreIds, got %#v", got[0].IgnoreIDs)
		}
		if got[0].IgnoreNameSubstrings == nil {
			t.Error("expected non-nil ignoreNameSubstrings")
		}
	})

	t.Run("unknown type is accepted at load time", func(t *testing.T) {
		data := `[{"shortName": "A", "httpFriendlyShortName": "a", "type": "album", "id": "x"}]`

		if _, err := ParseDescriptors([]byte(data)); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	tt := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{name: "malformed json", data: `{`, wantMsg: "failed to parse"},
		{name: "missing shortName", data: `[{"httpFriendlyShortName": "a", "type": "artist", "id": "x"}]`, wantMsg: "shortName"},
		{name: "missing id", data: `[{"shortName": "A", "httpFriendlyShortName": "a", "type": "artist"}]`, wantMsg: "missing id"},
		{name: "missing type", data: `[{"shortName": "A", "httpFriendlyShortName": "a", "id": "x"}]`, wantMsg: "missing type"},
		{name: "parent directory id", data: `[{"shortName": "A", "httpFriendlyShortName": "..", "type": "artist", "id": "x"}]`, wantMsg: "single directory name"},
		{name: "current directory id", data: `[{"shortName": "A", "httpFriendlyShortName": ".", "type": "artist", "id": "x"}]`, wantMsg: "single directory name"},
		{name: "nested id", data: `[{"shortName": "A", "httpFriendlyShortName": "a/b", "type": "artist", "id": "x"}]`, wantMsg: "single directory name"},
		{name: "backslash id", data: `[{"shortName": "A", "httpFriendlyShortName": "a\\b", "type": "artist", "id": "x"}]`, wantMsg: "single directory name"},
		{
			name:    "dot-prefixed alias of another id",
			data:    `[{"shortName": "A", "httpFriendlyShortName": "a", "type": "artist", "id": "x"}, {"shortName": "B", "httpFriendlyShortName": "./a", "type": "artist", "id": "y"}]`,
			wantMsg: "single directory name",
		},
		{
			name:    "duplicate httpFriendlyShortName",
			data:    `[{"shortName": "A", "httpFriendlyShortName": "a", "type": "artist", "id": "x"}, {"shortName": "B", "httpFriendlyShortName": "a", "type": "artist", "id": "y"}]`,
			wantMsg: "already used by descriptor 0",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDescriptors([]byte(tc.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("expected %q in error, got %v", tc.wantMsg, err)
			}
		})
	}
}

func TestLoadDescriptors(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sources.json")
		data := `[{"shortName": "A", "httpFriendlyShortName": "a", "type": "artist", "id": "x"}]`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("failed to write input: %v", err)
		}

		got, err := LoadDescriptors(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 1 {
			t.Errorf("expected 1 descriptor, got %d", len(got))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadDescriptors(filepath.Join(t.TempDir(), "missing.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestNewArtistLikeOutput(t *testing.T) {
	alt := 0.75
	d := InputDescriptor{
		ShortName:             "Show",
		HTTPFriendlyShortName: "show",
		Type:                  SourceShow,
		SourceID:              "s1",
		CoverCenterX:          1,
		CoverCenterY:          2,
		AltCoverCenterY:       &alt,
		CoverColorB:           "#fff",
		IgnoreIDs:             []string{"e1"},
	}

	out := NewArtistLikeOutput(d, "The Show", nil)

	if out.Name != "The Show" {
		t.Errorf("expected name The Show, got %s", out.Name)
	}
	if out.Images == nil {
		t.Error("expected non-nil images")
	}
	if out.AltCoverCenterY == nil || *out.AltCoverCenterY != alt {
		t.Errorf("expected altCoverCenterY to be carried over")
	}
	if out.CoverColorB != "#fff" || out.SourceID != "s1" || out.Type != SourceShow {
		t.Errorf("descriptor fields not copied: %+v", out)
	}

	result := RetrievalResult{ArtistLike: out}
	if result.ID() != "show" {
		t.Errorf("expected result id show, got %s", result.ID())
	}
}

func TestValidateDirName(t *testing.T) {
	tt := []struct {
		id    string
		valid bool
	}{
		{id: "boc", valid: true},
		{id: "my-show_2", valid: true},
		{id: "..a", valid: true},
		{id: "", valid: false},
		{id: ".", valid: false},
		{id: "..", valid: false},
		{id: "a/b", valid: false},
		{id: "./a", valid: false},
		{id: "/abs", valid: false},
		{id: `a\b`, valid: false},
	}

	for _, tc := range tt {
		t.Run(tc.id, func(t *testing.T) {
			err := ValidateDirName(tc.id)
			if tc.valid && err != nil {
				t.Errorf("expected %q to be valid, got %v", tc.id, err)
			}
			if !tc.valid && !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput for %q, got %v", tc.id, err)
			}
		})
	}
}

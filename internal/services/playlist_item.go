package services

import (
	"encoding/json"
	"fmt"
)

// ItemKind tags which payload a [PlaylistItem] carries.
type ItemKind int

const (
	ItemOther ItemKind = iota
	ItemTrack
	ItemEpisode
)

func (k ItemKind) String() string {
	switch k {
	case ItemTrack:
		return "track"
	case ItemEpisode:
		return "episode"
	default:
		return "other"
	}
}

// PlaylistItem is one playlist entry. The payload is resolved while decoding so callers
// switch on Kind instead of inspecting JSON:
//   - ItemTrack: Track is set
//   - ItemEpisode: Episode is set
//   - ItemOther: neither is set, Type holds the raw "type" value ("null" for a missing payload)
type PlaylistItem struct {
	AddedAt string
	IsLocal bool
	Kind    ItemKind
	Type    string
	Track   *SpotifyTrack
	Episode *SpotifyEpisode
}

// UnmarshalJSON implements [json.Unmarshaler].
func (p *PlaylistItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		AddedAt string          `json:"added_at"`
		IsLocal bool            `json:"is_local"`
		Track   json.RawMessage `json:"track"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode playlist item: %w", err)
	}

	*p = PlaylistItem{AddedAt: raw.AddedAt, IsLocal: raw.IsLocal, Kind: ItemOther}

	if len(raw.Track) == 0 || string(raw.Track) == "null" {
		p.Type = "null"
		return nil
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw.Track, &head); err != nil {
		return fmt.Errorf("failed to decode playlist item payload: %w", err)
	}
	p.Type = head.Type

	switch head.Type {
	case "track":
		var track SpotifyTrack
		if err := json.Unmarshal(raw.Track, &track); err != nil {
			return fmt.Errorf("failed to decode playlist track: %w", err)
		}
		p.Kind, p.Track = ItemTrack, &track
	case "episode":
		var episode SpotifyEpisode
		if err := json.Unmarshal(raw.Track, &episode); err != nil {
			return fmt.Errorf("failed to decode playlist episode: %w", err)
		}
		p.Kind, p.Episode = ItemEpisode, &episode
	}

	return nil
}

// package models defines the data model for catalog retrieval and the files written for the front-end
package models

// SourceType identifies which kind of catalog resource a descriptor points at.
type SourceType string

const (
	SourceArtist   SourceType = "artist"
	SourcePlaylist SourceType = "playlist"
	SourceShow     SourceType = "show"
)

// InputDescriptor identifies one artist, playlist or show to retrieve, along with
// presentation metadata that is passed through to the front-end untouched.
type InputDescriptor struct {
	ShortName             string     `json:"shortName"`
	HTTPFriendlyShortName string     `json:"httpFriendlyShortName"`
	Type                  SourceType `json:"type"`
	SourceID              string     `json:"id"`
	Icon                  string     `json:"icon,omitempty"`
	CoverCenterX          float64    `json:"coverCenterX"`
	CoverCenterY          float64    `json:"coverCenterY"`
	AltCoverCenterX       *float64   `json:"altCoverCenterX,omitempty"`
	AltCoverCenterY       *float64   `json:"altCoverCenterY,omitempty"`
	CoverColorA           string     `json:"coverColorA,omitempty"`
	CoverColorB           string     `json:"coverColorB,omitempty"`

	IgnoreIDs            []string `json:"ignoreIds"`
	IgnoreNameSubstrings []string `json:"ignoreNameSubstrings"`
}

// MediaImage is one rendition of an image returned by the catalog.
type MediaImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// NormalizedItem is one playable unit: an album, an album derived from a playlist track, or an episode.
type NormalizedItem struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	URLToOpen string       `json:"urlToOpen"`
	Images    []MediaImage `json:"images"`
}

// ArtistLikeOutput merges descriptor metadata with the display name and images resolved from the API.
type ArtistLikeOutput struct {
	ShortName             string       `json:"shortName"`
	HTTPFriendlyShortName string       `json:"httpFriendlyShortName"`
	Type                  SourceType   `json:"type"`
	SourceID              string       `json:"id"`
	Icon                  string       `json:"icon,omitempty"`
	CoverCenterX          float64      `json:"coverCenterX"`
	CoverCenterY          float64      `json:"coverCenterY"`
	AltCoverCenterX       *float64     `json:"altCoverCenterX,omitempty"`
	AltCoverCenterY       *float64     `json:"altCoverCenterY,omitempty"`
	CoverColorA           string       `json:"coverColorA,omitempty"`
	CoverColorB           string       `json:"coverColorB,omitempty"`
	Name                  string       `json:"name"`
	Images                []MediaImage `json:"images"`
}

// NewArtistLikeOutput copies everything but the ignore lists out of d.
func NewArtistLikeOutput(d InputDescriptor, name string, images []MediaImage) ArtistLikeOutput {
	if images == nil {
		images = []MediaImage{}
	}
	return ArtistLikeOutput{
		ShortName:             d.ShortName,
		HTTPFriendlyShortName: d.HTTPFriendlyShortName,
		Type:                  d.Type,
		SourceID:              d.SourceID,
		Icon:                  d.Icon,
		CoverCenterX:          d.CoverCenterX,
		CoverCenterY:          d.CoverCenterY,
		AltCoverCenterX:       d.AltCoverCenterX,
		AltCoverCenterY:       d.AltCoverCenterY,
		CoverColorA:           d.CoverColorA,
		CoverColorB:           d.CoverColorB,
		Name:                  name,
		Images:                images,
	}
}

// RetrievalResult is the unit persisted per input descriptor.
type RetrievalResult struct {
	ArtistLike ArtistLikeOutput `json:"artist"`
	Items      []NormalizedItem `json:"albums"`
}

// ID names the result's output directory.
func (r RetrievalResult) ID() string {
	return r.ArtistLike.HTTPFriendlyShortName
}

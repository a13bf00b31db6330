package formatter

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/coverwall/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	header lipgloss.Style
	cell   lipgloss.Style
	ok     lipgloss.Style
	border lipgloss.Style
}

func NewPalette(h, s, b string) *Palette {
	return &Palette{
		header: NewBold(h).Padding(0, 1),
		cell:   lipgloss.NewStyle().Padding(0, 1),
		ok:     NewBold(s),
		border: NewStyle(b),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

// Success renders msg in the success color.
func Success(msg string) string { return styles.ok.Render(msg) }

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.header
			}
			return styles.cell
		}).
		Headers(headers...)
}

// SummaryTable renders one row per result with its name, type, id and item count.
func SummaryTable(results []models.RetrievalResult) string {
	t := newTable("Name", "Type", "ID", "Items")
	for _, r := range results {
		t.Row(r.ArtistLike.Name, string(r.ArtistLike.Type), r.ID(), strconv.Itoa(len(r.Items)))
	}
	return t.String()
}

// DescriptorTable renders the descriptors in a source list without retrieving them.
func DescriptorTable(descriptors []models.InputDescriptor) string {
	t := newTable("Short Name", "Type", "ID", "Source ID", "Ignored")
	for _, d := range descriptors {
		ignored := len(d.IgnoreIDs) + len(d.IgnoreNameSubstrings)
		t.Row(d.ShortName, string(d.Type), d.HTTPFriendlyShortName, d.SourceID, strconv.Itoa(ignored))
	}
	return t.String()
}

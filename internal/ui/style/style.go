// Package style provides the palette, icons and lipgloss styles shared by the
// logger and the CLI tables.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Eucalypt = lipgloss.Color("#2F855A")
	Slate    = lipgloss.Color("#667085")
	Ochre    = lipgloss.Color("#C05621")
	Red      = lipgloss.Color("#D93025")
	Yellow   = lipgloss.Color("#F59E0B")
	Green    = lipgloss.Color("#22A06B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
)

// Table holds the styles of the CLI tables, bound to one renderer so that
// color detection follows the table's destination.
type Table struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Border lipgloss.Style
	Muted  lipgloss.Style
	Good   lipgloss.Style
	Bad    lipgloss.Style
	Warn   lipgloss.Style
}

// NewTable builds the table styles for r.
func NewTable(r *lipgloss.Renderer) Table {
	return Table{
		Header: r.NewStyle().Bold(true).Foreground(Eucalypt).Padding(0, 1),
		Cell:   r.NewStyle().Padding(0, 1),
		Border: r.NewStyle().Foreground(Slate),
		Muted:  r.NewStyle().Foreground(Slate),
		Good:   r.NewStyle().Foreground(Green),
		Bad:    r.NewStyle().Foreground(Red),
		Warn:   r.NewStyle().Foreground(Yellow),
	}
}

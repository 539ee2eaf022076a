package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/hkhalid/butrack/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Dim renders s in the dim style.
func Dim(s string) string { return StyleDim.Render(s) }

// CategoryStyle returns the lipgloss style for an urgency category.
func CategoryStyle(c domain.Category) lipgloss.Style {
	switch c {
	case domain.CategoryOverdue:
		return StyleRed
	case domain.CategoryUrgent:
		return StyleYellow
	case domain.CategoryDueSoon:
		return StyleBlue
	case domain.CategoryUpcoming:
		return StyleGreen
	default:
		return StyleDim
	}
}

// CategoryLabel returns the human heading for an urgency category.
func CategoryLabel(c domain.Category) string {
	switch c {
	case domain.CategoryOverdue:
		return "OVERDUE"
	case domain.CategoryUrgent:
		return "URGENT — due within 3 days"
	case domain.CategoryDueSoon:
		return "DUE SOON — due within a week"
	case domain.CategoryUpcoming:
		return "UPCOMING"
	default:
		return "NEEDS REVIEW — no readable deadline"
	}
}

// CategoryIndicator returns a colored bullet such as "● OVERDUE".
func CategoryIndicator(c domain.Category) string {
	return CategoryStyle(c).Render("● " + CategoryLabel(c))
}

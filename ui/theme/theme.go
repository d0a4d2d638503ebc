// Package theme holds the colors and shared lipgloss styles.
package theme

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorAccent     = lipgloss.Color("#9370DB")
	ColorAccentSoft = lipgloss.Color("#8884d8")
	ColorOrchid     = lipgloss.Color("#DA70D6")
	ColorYellow     = lipgloss.Color("#E5C07B")
	ColorRed        = lipgloss.Color("#E06C75")
	ColorGreen      = lipgloss.Color("#98C379")
	ColorBlue       = lipgloss.Color("#61AFEF")
	ColorWhite      = lipgloss.Color("#ABB2BF")
	ColorDimWhite   = lipgloss.Color("#5C6370")
	ColorBackground = lipgloss.Color("#1E1E2E")
	ColorSurface    = lipgloss.Color("#282A36")
	ColorOverlay    = lipgloss.Color("#44475A")
)

// Panel styles
var (
	FocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent)

	UnfocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimWhite)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	FocusedTitleStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorBackground).
				Background(ColorAccent).
				Bold(true)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	DimmedStyle = lipgloss.NewStyle().
			Foreground(ColorDimWhite)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// File tree styles
var (
	FolderStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	FileStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	ChevronStyle = lipgloss.NewStyle().
			Foreground(ColorDimWhite)
)

// Sidebar header and history styles
var (
	RepoNameStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorAccentSoft).
			Padding(0, 1)

	ControlStyle = lipgloss.NewStyle().
			Foreground(ColorOrchid).
			Bold(true)

	ArchivedStyle = lipgloss.NewStyle().
			Foreground(ColorDimWhite).
			Italic(true)

	QuestionStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorDimWhite)
)

// Floating window styles
var (
	FloatingWindowStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent).
				Background(ColorSurface).
				Padding(1, 2)

	FloatingTitleStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Padding(0, 1)
)

// Help bar styles
var (
	HelpBarStyle = lipgloss.NewStyle().
			Foreground(ColorDimWhite).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorDimWhite)
)

// Layout constants
const (
	PanelMinHeight    = 3
	HeaderHeight      = 3
	FloatingMaxWidth  = 70
	FloatingMinHeight = 8
)

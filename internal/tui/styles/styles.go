package styles

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Overlay0 = lipgloss.Color("#6c7086")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Red      = lipgloss.Color("#f38ba8")
	Maroon   = lipgloss.Color("#eba0ac")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
	Blue     = lipgloss.Color("#89b4fa")
	Mauve    = lipgloss.Color("#cba6f7")
	Lavender = lipgloss.Color("#b4befe")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Yellow).
			Background(Surface0).
			Padding(0, 2).
			Align(lipgloss.Center)

	TabStyle = lipgloss.NewStyle().
			Foreground(Subtext0).
			Padding(0, 2)

	ActiveTabStyle = TabStyle.
			Foreground(Base).
			Background(Lavender).
			Bold(true)

	ListItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Yellow).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Subtext0)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	FaintStyle = lipgloss.NewStyle().
			Foreground(Overlay0)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Red).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Maroon).
			Padding(0, 1)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Padding(1, 2)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(Text).
			Background(Surface1).
			Padding(0, 2)

	DangerButtonStyle = ButtonStyle.
				Foreground(Base).
				Background(Red).
				Bold(true)

	DisabledButtonStyle = ButtonStyle.
				Foreground(Overlay0).
				Background(Surface0)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Subtext0)

	ToastStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Lavender)
)

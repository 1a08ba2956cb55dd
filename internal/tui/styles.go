package tui

import "github.com/charmbracelet/lipgloss"

// Colors used in the curation view.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorDanger    = lipgloss.Color("196") // Red
	colorWarn      = lipgloss.Color("214") // Orange
)

// TitleStyle for the screen header.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// DayHeader style for day panel headers.
var DayHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// CurrentDayHeader style for the day under review.
var CurrentDayHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// MainStory style for a day's main story line.
var MainStory = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// MiniStory style for mini story lines.
var MiniStory = lipgloss.NewStyle().
	Foreground(colorSecondary)

// EmptySlot style for missing mains.
var EmptySlot = lipgloss.NewStyle().
	Foreground(colorMuted).
	Italic(true)

// HealthHealthy, HealthWeak, HealthOverloaded badge the assessor verdict.
var (
	HealthHealthy    = lipgloss.NewStyle().Foreground(colorSuccess)
	HealthWeak       = lipgloss.NewStyle().Foreground(colorWarn)
	HealthOverloaded = lipgloss.NewStyle().Foreground(colorDanger)
)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in the status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in the status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// MessageStyle for the last action's outcome.
var MessageStyle = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Padding(0, 1)

// WarningStyle for non-blocking problems.
var WarningStyle = lipgloss.NewStyle().
	Foreground(colorWarn).
	Padding(0, 1)

// ErrorStyle for rejected actions and blocking issues.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorDanger).
	Bold(true).
	Padding(0, 1)

// PromptStyle for the overflow resolution prompt.
var PromptStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorWarn).
	Padding(0, 1)

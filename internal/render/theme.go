package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	butterscotch = "#FF9966"
	blue         = "#9999CC"
	redAlert     = "#FF3333"
	greenOk      = "#33FF33"
	galaxyGray   = "#52526A"
	spaceWhite   = "#F5F6FA"
	ice          = "#99CCFF"
)

const (
	iconDone   = "✓"
	iconFailed = "✗"
)

var colorProfileFn = lipgloss.ColorProfile

var (
	butterscotchColor = profileColor(butterscotch, "209", "11")
	blueColor         = profileColor(blue, "146", "12")
	redAlertColor     = profileColor(redAlert, "203", "9")
	greenOkColor      = profileColor(greenOk, "46", "10")
	galaxyGrayColor   = profileColor(galaxyGray, "60", "8")
	spaceWhiteColor   = profileColor(spaceWhite, "255", "15")
	iceColor          = profileColor(ice, "153", "14")
)

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(butterscotchColor).
			Foreground(butterscotchColor).
			Bold(true).
			Padding(0, 2)
	headerStyle  = lipgloss.NewStyle().Foreground(blueColor).Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Foreground(spaceWhiteColor).Padding(0, 1)
	resultStyle  = lipgloss.NewStyle().Foreground(iceColor).Padding(0, 1)
	failureStyle = lipgloss.NewStyle().Foreground(redAlertColor).Bold(true).Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(galaxyGrayColor).Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(galaxyGrayColor)
	totalStyle   = lipgloss.NewStyle().Foreground(greenOkColor).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(butterscotchColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(redAlertColor).Bold(true)
)

func profileColor(hex string, ansi256 string, ansi string) lipgloss.TerminalColor {
	switch colorProfileFn() {
	case termenv.ANSI256, termenv.ANSI:
		return lipgloss.CompleteAdaptiveColor{
			Light: lipgloss.CompleteColor{TrueColor: hex, ANSI256: ansi256, ANSI: ansi},
			Dark:  lipgloss.CompleteColor{TrueColor: hex, ANSI256: ansi256, ANSI: ansi},
		}
	default:
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}
}

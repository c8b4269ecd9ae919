package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const AppName = "spotlight"

// LogoLines is the canonical banner logo.
var LogoLines = []string{
	" ▄▄▄▄ ▄▄▄▄   ▄▄▄  ▄▄▄▄▄ ▄    ▄ ▄▄▄▄",
	"██▄▄▄ ██▄██ ██ ██   ██  ██   ██ ██ ▀",
	"   ██ ██    ██ ██   ██  ██   ██ ██ ▀█",
	"▀▀▀▀  ▀▀     ▀▀▀    ▀▀  ▀▀▀▀ ▀▀ ▀▀▀▀",
}

// BannerColors cycle over the banner lines.
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#FFA86B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#4ECDC4"),
	lipgloss.Color("#FF6B6B"),
}

var (
	PrimaryColor    = lipgloss.Color("#FF6B6B") // coral
	SecondaryColor  = lipgloss.Color("#4ECDC4") // teal
	BackgroundColor = lipgloss.Color("#1A1A2E")
	MutedColor      = lipgloss.Color("#94A3B8")

	MarkColor    = lipgloss.Color("#FFE66D") // in-page hits
	WarnColor    = lipgloss.Color("#FFA86B")
	ErrorColor   = lipgloss.Color("#EF4444")
	SuccessColor = lipgloss.Color("#10B981")
)

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	MarkStyle = lipgloss.NewStyle().
			Foreground(BackgroundColor).
			Background(MarkColor).
			Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	StatusInfoStyle    = lipgloss.NewStyle().Foreground(MutedColor)
	StatusSuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	StatusWarnStyle    = lipgloss.NewStyle().Foreground(WarnColor)
	StatusErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
)

// ContentWrapper clips content to the area above the status bar.
func ContentWrapper(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height)
}

// GetWelcomeMessage is shown when no page was given.
func GetWelcomeMessage(hotkey string) string {
	return GetCompactBanner(fmt.Sprintf("Press %s to open %s", hotkey, AppName))
}

func GetCompactBanner(message string) string {
	logo := make([]string, len(LogoLines))
	for i, line := range LogoLines {
		logo[i] = LogoStyle.Render(line)
	}
	return lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, logo...),
		"",
		HelpStyle.Render(message),
	)
}

const bannerWidth = 70

// Banner renders the startup banner: the logo in banner colors above
// the tagline, framed in a double border.
func Banner(version string) string {
	tagline := "Command Palette"
	if tag := versionTag(version); tag != "" {
		tagline += " " + tag
	}

	rows := make([]string, 0, len(LogoLines)+2)
	for i, line := range LogoLines {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(true).
			Render(line))
	}
	rows = append(rows, "", lipgloss.NewStyle().Foreground(SecondaryColor).Render(tagline))

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(SecondaryColor).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, rows...))

	hint := HelpStyle.Render("◆ esc closes · enter opens · ctrl+1..9 jumps ◆")
	return lipgloss.NewStyle().
		Width(bannerWidth).
		Align(lipgloss.Center).
		MarginTop(1).
		MarginBottom(1).
		Render(lipgloss.JoinVertical(lipgloss.Center, box, hint))
}

// versionTag prefixes release versions with v. Development builds get
// no tag.
func versionTag(version string) string {
	switch {
	case version == "" || version == "dev":
		return ""
	case version[0] == 'v' || version[0] == 'V':
		return version
	}
	return "v" + version
}

func ShowBanner(version string) {
	fmt.Println(Banner(version))
}

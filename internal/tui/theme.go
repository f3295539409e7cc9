package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette. Everything is adaptive so both light and dark terminals stay
// readable; faint styling is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted       lipgloss.TerminalColor = ac("240", "243")
	colorChromeFg    lipgloss.TerminalColor = ac("240", "245")
	colorBorderIdle  lipgloss.TerminalColor = ac("250", "243")
	colorBorderFocus lipgloss.TerminalColor = ac("232", "255")

	// Drop target borders while hovering.
	colorAccept lipgloss.TerminalColor = ac("28", "42")
	colorReject lipgloss.TerminalColor = ac("160", "203")

	colorChipBg         lipgloss.TerminalColor = ac("254", "236")
	colorChipFg         lipgloss.TerminalColor = ac("235", "252")
	colorChipSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorChipSelectedFg lipgloss.TerminalColor = ac("232", "255")
	colorAccent         lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg       lipgloss.TerminalColor = ac("255", "235")

	colorStatusWarn  lipgloss.TerminalColor = ac("130", "214")
	colorStatusError lipgloss.TerminalColor = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorChromeFg)
}

func styleChip() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1).Background(colorChipBg).Foreground(colorChipFg)
}

func styleChipCursor() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1).Bold(true).Background(colorChipSelectedBg).Foreground(colorChipSelectedFg).Underline(true)
}

func styleChipDragging() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1).Background(colorAccent).Foreground(colorAccentFg)
}

// applyColorProfilePreference picks the Lip Gloss color profile. Only
// NO_COLOR disables colors; otherwise termenv's guess is upgraded when
// TERM/COLORTERM advertise more than the detector found.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) pref (config or DRAGCART_TUI_THEME): light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference(pref string) {
	switch strings.ToLower(strings.TrimSpace(pref)) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}

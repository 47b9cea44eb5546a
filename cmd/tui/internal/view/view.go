// Package view holds the terminal screens: inventory management, bill
// composition and invoice browsing.
package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is one full screen of the program. Title and ShortHelp feed the
// frame drawn around whichever screen is active.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by every screen.
type CommonModel struct{}

// BackMsg returns control to the main menu.
type BackMsg struct{}

// Back is used as a tea.Cmd to leave the current screen.
func Back() tea.Msg {
	return BackMsg{}
}

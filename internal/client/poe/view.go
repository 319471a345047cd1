package poe

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	onlineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	offlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(8)
	claimedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	enabledStyle  = lipgloss.NewStyle()
)

func badge(online bool) string {
	if online {
		return onlineStyle.Render("● online")
	}
	return offlineStyle.Render("● offline")
}

func action(label string, enabled bool) string {
	if enabled {
		return enabledStyle.Render(label)
	}
	return disabledStyle.Render(label)
}

func (m Model) claimLine() string {
	switch {
	case m.state.Digest == "":
		return ""
	case m.state.IsClaimed():
		return claimedStyle.Render(fmt.Sprintf("This file is claimed by %s at block #%d", m.state.Owner, m.state.Block))
	default:
		return "This file has not been claimed"
	}
}

func (m Model) View() string {
	var b strings.Builder

	signer := m.tx.Signer()

	b.WriteString(titleStyle.Render("Proof of Existence") + "  " + badge(m.online) + "\n")
	b.WriteString(labelStyle.Render("account") + signer + "\n\n")

	b.WriteString(labelStyle.Render("file") + m.input + "█\n")
	d := m.state.Digest
	if m.hashing {
		d = "hashing..."
	}
	b.WriteString(labelStyle.Render("digest") + d + "\n")
	if line := m.claimLine(); line != "" {
		b.WriteString("\n" + line + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		"enter hash",
		action("ctrl+s create claim", !m.busy && m.state.CanCreate()),
		action("ctrl+r revoke claim", !m.busy && m.state.CanRevoke(signer)),
		action("ctrl+e archive evidence", !m.busy && m.state.CanArchive(signer)),
		"esc quit",
	}, " · "))
	b.WriteString("\n")

	if m.state.Status != "" {
		b.WriteString("\n" + m.state.Status + "\n")
	}

	return b.String()
}

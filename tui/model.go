package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsphweid/chordtrainer/constants"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/player"
)

// Transport starts and stops the metronome driving the player.
type Transport interface {
	Toggle() (playing bool)
	Playing() bool
	SetPeriod(time.Duration)
}

type Model struct {
	Player    *player.Player
	Transport Transport
	err       error
	quitting  bool
}

type UpdateMsg struct{}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	currentStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 2)
	nextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Border(lipgloss.HiddenBorder()).
			Padding(0, 2)
)

func NewModel(p *player.Player, t Transport) Model {
	return Model{Player: p, Transport: t}
}

func ListenForUpdates(p *player.Player) tea.Cmd {
	return func() tea.Msg {
		<-p.Updates()
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Player)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			if m.Transport.Playing() {
				m.Transport.Toggle()
			}
			return m, tea.Quit

		case " ":
			m.Transport.Toggle()

		case "n", "right":
			m.err = m.Player.Next()

		case "p", "left":
			m.err = m.Player.Previous()

		case "k":
			m.err = m.Player.Dispatch(model.Action{Type: model.SwitchKeyLock})

		case "e":
			m.err = m.Player.Dispatch(model.Action{Type: model.SwitchExtensionLock})

		case "t":
			m.err = m.Player.Dispatch(model.Action{Type: model.ToggleShowRandomTopNote})

		case "m":
			muted := !m.Player.State().IsMuted
			m.err = m.Player.Dispatch(model.Action{Type: model.SetMuted, Payload: &model.Payload{IsMuted: &muted}})

		case "b":
			bpc := nextBeatsPerChord(m.Player.State().BeatsPerChord)
			m.err = m.Player.Dispatch(model.Action{Type: model.SetBPC, Payload: &model.Payload{BeatsPerChord: &bpc}})

		case "+", "=":
			m.changeTempo(1)
		case "-", "_":
			m.changeTempo(-1)
		case "]":
			m.changeTempo(10)
		case "[":
			m.changeTempo(-10)
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Player)
	}

	return m, nil
}

func (m *Model) changeTempo(delta int) {
	if m.err = m.Player.ChangeTempo(delta); m.err == nil {
		m.Transport.SetPeriod(m.Player.BeatPeriod())
	}
}

func nextBeatsPerChord(current string) string {
	opts := constants.BeatsPerChordOptions
	for i, o := range opts {
		if o == current {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}

func renderChord(c model.Chord, showTopNote bool) string {
	lines := []string{c.Symbol(), strings.Join(c.Notes, " ")}
	if showTopNote && c.TopNote != nil {
		lines = append(lines, fmt.Sprintf("top: %s%d", c.TopNote.Name, c.TopNote.Octave))
	}
	return strings.Join(lines, "\n")
}

func flag(on bool, label string) string {
	if on {
		return " " + label
	}
	return ""
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.Player.State()

	playState := "STOP"
	if m.Transport.Playing() {
		playState = "PLAY"
	}
	header := headerStyle.Render(fmt.Sprintf("chordtrainer  %s  %sbpm  beat %d/%s%s%s%s",
		playState, s.BeatsPerMinute, s.Beat, s.BeatsPerChord,
		flag(s.IsMuted, "[muted]"), flag(s.KeyLocked, "[key]"), flag(s.ExtensionLocked, "[ext]")))

	var chords []string
	for i, c := range s.VisibleChords() {
		style := nextStyle
		if i == 0 {
			style = currentStyle
		}
		chords = append(chords, style.Render(renderChord(c, s.ShowRandomTopNote)))
	}

	help := dimStyle.Render("space:play  n/p:next/prev  k/e:lock key/ext  m:mute  t:top note  b:beats  +/-/[/]:tempo  q:quit")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chords...))
	out.WriteString("\n\n")
	out.WriteString(help)
	if m.err != nil {
		out.WriteString("\n")
		out.WriteString(errorStyle.Render(m.err.Error()))
	}
	return out.String()
}

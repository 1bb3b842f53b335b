package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/kairos/internal/service"
	"github.com/alexanderramin/kairos/internal/syncdoc"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/kairos/internal/cli/formatter"
)

// spinnerFrames is a braille spinner driven by tea.Tick from the render
// loop; a bubbletea model never owns stdout, so a goroutine printing frames
// directly is not an option here.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type watchKeyMap struct {
	Quit key.Binding
}

func defaultWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type statusMsg syncdoc.Status

type awarenessMsg struct {
	replicaID string
	state     syncdoc.AwarenessState
}

type connectedMsg struct{ err error }

type tickMsg time.Time

// watchModel is a bounded bubbletea view onto one SyncSession: it shows the
// document's connection status as it changes and the presence ("awareness")
// of every known replica. It is the one interactive TUI surface this CLI
// builds — everything else is the plain cobra/lipgloss command tree.
type watchModel struct {
	session    *service.SyncSession
	transport  syncdoc.Transport
	url        string
	documentID string

	keys watchKeyMap

	status     syncdoc.Status
	awareness  map[string]syncdoc.AwarenessState
	connectErr error
	frame      int

	statusCh    chan syncdoc.Status
	awarenessCh chan awarenessMsg

	quitting bool
}

func newWatchModel(session *service.SyncSession, transport syncdoc.Transport, url, documentID string) watchModel {
	return watchModel{
		session:     session,
		transport:   transport,
		url:         url,
		documentID:  documentID,
		keys:        defaultWatchKeyMap(),
		awareness:   make(map[string]syncdoc.AwarenessState),
		statusCh:    make(chan syncdoc.Status, 16),
		awarenessCh: make(chan awarenessMsg, 16),
	}
}

func (m watchModel) Init() tea.Cmd {
	m.session.Document.OnStatusChange(func(s syncdoc.Status) {
		select {
		case m.statusCh <- s:
		default:
		}
	})
	m.session.Document.OnAwarenessChange(func(replicaID string, state syncdoc.AwarenessState) {
		select {
		case m.awarenessCh <- awarenessMsg{replicaID: replicaID, state: state}:
		default:
		}
	})

	return tea.Batch(m.connectCmd(), m.waitForStatus(), m.waitForAwareness(), tickCmd())
}

func (m watchModel) connectCmd() tea.Cmd {
	return func() tea.Msg {
		if m.transport == nil {
			return connectedMsg{err: fmt.Errorf("no transport configured")}
		}
		err := m.session.Document.Connect(context.Background(), m.transport, m.url, m.documentID)
		return connectedMsg{err: err}
	}
}

func (m watchModel) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		return statusMsg(<-m.statusCh)
	}
}

func (m watchModel) waitForAwareness() tea.Cmd {
	return func() tea.Msg {
		return <-m.awarenessCh
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.session.Document.Disconnect()
			return m, tea.Quit
		}
		return m, nil

	case connectedMsg:
		m.connectErr = msg.err
		return m, nil

	case statusMsg:
		m.status = syncdoc.Status(msg)
		return m, m.waitForStatus()

	case awarenessMsg:
		m.awareness[msg.replicaID] = msg.state
		return m, m.waitForAwareness()

	case tickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tickCmd()
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	frame := spinnerFrames[m.frame]
	if !m.status.Syncing {
		frame = "•"
	}

	header := fmt.Sprintf("%s watching document %s", formatter.StylePurple.Render(frame), m.documentID)
	lines := []string{header, ""}

	connectedLabel := formatter.StyleRed.Render("● disconnected")
	if m.status.Connected {
		connectedLabel = formatter.StyleGreen.Render("● connected")
	}
	lines = append(lines, fmt.Sprintf("connected: %s", connectedLabel))
	lines = append(lines, fmt.Sprintf("syncing:   %t", m.status.Syncing))
	lines = append(lines, fmt.Sprintf("pending:   %d", m.status.PendingChanges))
	if m.status.LastSyncTime != nil {
		lines = append(lines, fmt.Sprintf("last sync: %s", m.status.LastSyncTime.Format(time.Kitchen)))
	}
	if m.status.Error != "" {
		lines = append(lines, formatter.StyleRed.Render("error: "+m.status.Error))
	}
	if m.connectErr != nil {
		lines = append(lines, formatter.StyleRed.Render("connect: "+m.connectErr.Error()))
	}

	lines = append(lines, "", formatter.StyleHeader.Render("presence"))
	if len(m.awareness) == 0 {
		lines = append(lines, formatter.StyleDim.Render("(no remote replicas seen yet)"))
	}
	for replicaID, state := range m.awareness {
		lines = append(lines, fmt.Sprintf("  %s: %v", replicaID, state))
	}

	lines = append(lines, "", formatter.StyleDim.Render("press q to quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

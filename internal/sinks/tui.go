package sinks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lognorm/internal/event"
)

// TUISink shows events in a scrollable full-screen viewer. It keeps running
// after the input ends until the user quits with q.
type TUISink struct {
	Options []tea.ProgramOption
}

func (s *TUISink) Run(ctx context.Context, in <-chan *event.NormalizedEvent) error {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, s.Options...)
	p := tea.NewProgram(newViewerModel(), opts...)

	go func() {
		for evt := range in {
			p.Send(eventMsg{evt: evt})
		}
		p.Send(endOfInputMsg{})
	}()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

type eventMsg struct {
	evt *event.NormalizedEvent
}

type endOfInputMsg struct{}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

type viewerModel struct {
	viewport viewport.Model
	lines    []string
	counts   map[event.Type]int
	total    int
	follow   bool
	done     bool
	ready    bool
}

func newViewerModel() viewerModel {
	return viewerModel{
		counts: make(map[event.Type]int),
		follow: true,
	}
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-2, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "f":
			m.follow = !m.follow
			if m.follow {
				m.viewport.GotoBottom()
			}
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}

	case eventMsg:
		m.lines = append(m.lines, FormatLine(msg.evt))
		m.counts[msg.evt.Type]++
		m.total++
		m.refresh()
		return m, nil

	case endOfInputMsg:
		m.done = true
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *viewerModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

func (m viewerModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("events %d  %s %d  %s %d  %s %d  %s %d",
		m.total,
		renderType(event.TypeError), m.counts[event.TypeError],
		renderType(event.TypeWarning), m.counts[event.TypeWarning],
		renderType(event.TypeInfo), m.counts[event.TypeInfo],
		renderType(event.TypeDebug), m.counts[event.TypeDebug],
	))

	status := "reading"
	if m.done {
		status = "end of input"
	}
	follow := "off"
	if m.follow {
		follow = "on"
	}
	footer := footerStyle.Render(fmt.Sprintf("%s · follow %s · f toggle follow · q quit", status, follow))

	if !m.ready {
		return header + "\n" + footer
	}
	return header + "\n" + m.viewport.View() + "\n" + footer
}

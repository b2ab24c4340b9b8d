package sinks

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lognorm/internal/event"
)

var (
	typeStyles = map[event.Type]lipgloss.Style{
		event.TypeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		event.TypeWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		event.TypeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		event.TypeDebug:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
	dimStyle    = lipgloss.NewStyle().Faint(true)
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// ConsoleSink prints one human readable line per event.
type ConsoleSink struct {
	Writer io.Writer // defaults to os.Stdout
}

func (s *ConsoleSink) Run(ctx context.Context, in <-chan *event.NormalizedEvent) error {
	w := s.Writer
	if w == nil {
		w = os.Stdout
	}
	for evt := range in {
		if _, err := fmt.Fprintln(w, FormatLine(evt)); err != nil {
			return err
		}
	}
	return nil
}

// FormatLine renders evt as
// `timestamp TYPE [logsource] program@host (env) message {k=v ...}`,
// leaving out empty parts.
func FormatLine(evt *event.NormalizedEvent) string {
	var parts []string
	if evt.Timestamp != "" {
		parts = append(parts, dimStyle.Render(evt.Timestamp))
	}
	parts = append(parts, renderType(evt.Type))
	if evt.Logsource != "" {
		parts = append(parts, sourceStyle.Render("["+string(evt.Logsource)+"]"))
	}
	if origin := origin(evt); origin != "" {
		parts = append(parts, origin)
	}
	if evt.Env != "" {
		parts = append(parts, "("+evt.Env+")")
	}
	if evt.Message != "" {
		parts = append(parts, evt.Message)
	}
	if extra := formatExtra(evt.ExtraData); extra != "" {
		parts = append(parts, dimStyle.Render(extra))
	}
	return strings.Join(parts, " ")
}

func renderType(t event.Type) string {
	label := string(t)
	if label == "" {
		label = "-"
	}
	label = fmt.Sprintf("%-7s", label)
	if st, ok := typeStyles[t]; ok {
		return st.Render(label)
	}
	return label
}

func origin(evt *event.NormalizedEvent) string {
	switch {
	case evt.Program != "" && evt.Host != "":
		return evt.Program + "@" + evt.Host
	case evt.Program != "":
		return evt.Program
	default:
		return evt.Host
	}
}

func formatExtra(extra map[string]any) string {
	if len(extra) == 0 {
		return ""
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%v", k, extra[k])
	}
	return "{" + strings.Join(pairs, " ") + "}"
}

package sinks

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lognorm/internal/event"
)

func feed(evts ...*event.NormalizedEvent) <-chan *event.NormalizedEvent {
	ch := make(chan *event.NormalizedEvent, len(evts))
	for _, e := range evts {
		ch <- e
	}
	close(ch)
	return ch
}

func sampleEvent() *event.NormalizedEvent {
	return &event.NormalizedEvent{
		Logsource: event.LogsourceServer,
		Program:   "app",
		Host:      "host",
		Env:       "prod",
		Type:      event.TypeInfo,
		Timestamp: "2021-01-01T00:00:00.000Z",
		Message:   "hello <world>",
		ExtraData: map[string]any{"pid": "123", "k": "v"},
	}
}

// ── stdout ────────────────────────────────────────────────────────────────────

func TestStdoutSink_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	s := &StdoutSink{Writer: &buf}

	if err := s.Run(context.Background(), feed(sampleEvent(), &event.NormalizedEvent{Type: event.TypeError})); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d: %q", len(lines), buf.String())
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("line 1 not JSON: %v", err)
	}
	if got["message"] != "hello <world>" {
		t.Errorf("message: want %q, got %v", "hello <world>", got["message"])
	}
	if !strings.Contains(lines[1], `"extraData":null`) {
		t.Errorf("expected null extraData in %s", lines[1])
	}
}

func TestStdoutSink_Pretty(t *testing.T) {
	var buf bytes.Buffer
	s := &StdoutSink{Writer: &buf, Pretty: true}
	if err := s.Run(context.Background(), feed(sampleEvent())); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"logsource\": \"server\"") {
		t.Errorf("expected indented output, got %s", buf.String())
	}
}

// ── memory ────────────────────────────────────────────────────────────────────

func TestMemorySink_KeepsOrder(t *testing.T) {
	var s MemorySink
	a, b := &event.NormalizedEvent{Message: "a"}, &event.NormalizedEvent{Message: "b"}
	if err := s.Run(context.Background(), feed(a, b)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := s.Events()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("unexpected events: %+v", got)
	}
}

// ── console ───────────────────────────────────────────────────────────────────

func TestFormatLine(t *testing.T) {
	line := FormatLine(sampleEvent())
	for _, want := range []string{"2021-01-01T00:00:00.000Z", "INFO", "[server]", "app@host", "(prod)", "hello <world>", "{k=v pid=123}"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %q in %q", want, line)
		}
	}
}

func TestFormatLine_Stacktrace(t *testing.T) {
	line := FormatLine(&event.NormalizedEvent{Type: event.TypeError, Message: "at foo() | at bar()"})
	if strings.Contains(line, "[client]") || strings.Contains(line, "[server]") {
		t.Errorf("stack trace has no logsource, got %q", line)
	}
	if !strings.Contains(line, "at foo() | at bar()") {
		t.Errorf("missing message in %q", line)
	}
}

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	s := &ConsoleSink{Writer: &buf}
	if err := s.Run(context.Background(), feed(sampleEvent(), sampleEvent())); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Errorf("want 2 lines, got %d", n)
	}
}

// ── tui ───────────────────────────────────────────────────────────────────────

func TestViewerModel_CountsAndEnd(t *testing.T) {
	var m tea.Model = newViewerModel()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 10})
	m, _ = m.Update(eventMsg{evt: sampleEvent()})
	m, _ = m.Update(eventMsg{evt: &event.NormalizedEvent{Type: event.TypeError, Message: "boom"}})
	m, _ = m.Update(endOfInputMsg{})

	vm := m.(viewerModel)
	if vm.total != 2 || vm.counts[event.TypeError] != 1 || vm.counts[event.TypeInfo] != 1 {
		t.Errorf("unexpected counts: total=%d %v", vm.total, vm.counts)
	}
	view := vm.View()
	if !strings.Contains(view, "end of input") {
		t.Errorf("expected end-of-input status in view:\n%s", view)
	}
	if !strings.Contains(view, "boom") {
		t.Errorf("expected event text in view:\n%s", view)
	}
}

func TestViewerModel_Quit(t *testing.T) {
	m := newViewerModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestViewerModel_ToggleFollow(t *testing.T) {
	var m tea.Model = newViewerModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	if m.(viewerModel).follow {
		t.Fatal("expected follow to be off after toggle")
	}
}

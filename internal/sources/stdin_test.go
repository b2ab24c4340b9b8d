package sources

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"lognorm/internal/event"
)

func collect(t *testing.T, run func(ctx context.Context, out chan<- event.Line) error) []event.Line {
	t.Helper()
	out := make(chan event.Line, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx, out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(out)

	var lines []event.Line
	for l := range out {
		lines = append(lines, l)
	}
	return lines
}

func TestStdinSource_Reader(t *testing.T) {
	src := &StdinSource{Reader: strings.NewReader("first\n\nthird\nno newline")}
	lines := collect(t, src.Run)

	want := []string{"first", "", "third", "no newline"}
	if len(lines) != len(want) {
		t.Fatalf("want %d lines, got %d: %+v", len(want), len(lines), lines)
	}
	for i, l := range lines {
		if l.Text != want[i] {
			t.Errorf("line %d: want %q, got %q", i, want[i], l.Text)
		}
		if l.Source != "stdin" {
			t.Errorf("line %d: Source want stdin, got %q", i, l.Source)
		}
	}
}

func TestStdinSource_Pipe(t *testing.T) {
	r, w, _ := os.Pipe()
	oldStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = oldStdin }()

	src := &StdinSource{}
	out := make(chan event.Line, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- src.Run(ctx, out) }()

	w.WriteString("hello from stdin\n")

	evt := <-out
	if evt.Text != "hello from stdin" {
		t.Errorf("got %s", evt.Text)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run after cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stdin source did not stop on cancel")
	}
	w.Close()
}

func TestStdinSource_LineTooLong(t *testing.T) {
	src := &StdinSource{Reader: strings.NewReader(strings.Repeat("x", 100) + "\n"), MaxLineSize: 10}
	out := make(chan event.Line, 1)
	if err := src.Run(context.Background(), out); err == nil {
		t.Fatal("expected error for oversized line")
	}
}

package transform

import (
	"context"
	"testing"

	"lognorm/internal/event"
)

func runRemap(t *testing.T, tr *Remap, evts ...*event.NormalizedEvent) []*event.NormalizedEvent {
	t.Helper()
	in := make(chan *event.NormalizedEvent, len(evts))
	out := make(chan *event.NormalizedEvent, len(evts))
	for _, e := range evts {
		in <- e
	}
	close(in)

	if err := tr.Run(context.Background(), in, out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(out)

	var got []*event.NormalizedEvent
	for e := range out {
		got = append(got, e)
	}
	return got
}

func TestRemap_Run(t *testing.T) {
	tests := []struct {
		name      string
		extra     map[string]any
		wantExtra map[string]any
	}{
		{"nil extraData", nil, map[string]any{"cluster": "eu-1"}},
		{"merges", map[string]any{"pid": "42"}, map[string]any{"pid": "42", "cluster": "eu-1"}},
		{"existing key wins", map[string]any{"cluster": "us-2"}, map[string]any{"cluster": "us-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := &event.NormalizedEvent{Type: event.TypeInfo, Message: "hi", ExtraData: tt.extra}
			tr := &Remap{AddFields: map[string]string{"cluster": "eu-1"}}

			got := runRemap(t, tr, orig)
			if len(got) != 1 {
				t.Fatalf("expected 1 event, got %d", len(got))
			}
			res := got[0]
			if len(res.ExtraData) != len(tt.wantExtra) {
				t.Fatalf("ExtraData: want %v, got %v", tt.wantExtra, res.ExtraData)
			}
			for k, v := range tt.wantExtra {
				if res.ExtraData[k] != v {
					t.Errorf("ExtraData[%s]: want %v, got %v", k, v, res.ExtraData[k])
				}
			}
			if res.Message != "hi" || res.Type != event.TypeInfo {
				t.Errorf("core fields changed: %+v", res)
			}
		})
	}
}

func TestRemap_DoesNotMutateInput(t *testing.T) {
	orig := &event.NormalizedEvent{Message: "x", ExtraData: map[string]any{"a": "1"}}
	got := runRemap(t, &Remap{AddFields: map[string]string{"b": "2"}}, orig)

	if got[0] == orig {
		t.Fatal("expected a clone, got the original pointer")
	}
	if _, ok := orig.ExtraData["b"]; ok {
		t.Error("original event was mutated")
	}
}

func TestRemap_NoFieldsPassesThrough(t *testing.T) {
	orig := &event.NormalizedEvent{Message: "x"}
	got := runRemap(t, &Remap{}, orig)
	if got[0] != orig {
		t.Error("expected the same event when there is nothing to add")
	}
	if got[0].ExtraData != nil {
		t.Errorf("ExtraData: want nil, got %v", got[0].ExtraData)
	}
}

func TestRemap_ContextCancelled(t *testing.T) {
	in := make(chan *event.NormalizedEvent, 1)
	out := make(chan *event.NormalizedEvent) // unbuffered, never read
	in <- &event.NormalizedEvent{}
	close(in)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := (&Remap{}).Run(ctx, in, out); err != context.Canceled {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

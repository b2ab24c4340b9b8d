package event_test

import (
	"encoding/json"
	"strings"
	"testing"

	"lognorm/internal/event"
)

// ----- ParseType -----

func TestParseType(t *testing.T) {
	cases := []struct {
		in   string
		want event.Type
		ok   bool
	}{
		{"error", event.TypeError, true},
		{"  Warning ", event.TypeWarning, true},
		{"INFO", event.TypeInfo, true},
		{"debug", event.TypeDebug, true},
		{"warn", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := event.ParseType(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("ParseType(%q): want (%q, ok=%v), got (%q, %v)", tc.in, tc.want, tc.ok, got, err)
		}
	}
}

// ----- Is -----

func TestIs_EmptyTypeNeverMatches(t *testing.T) {
	e := &event.NormalizedEvent{}
	if e.Is("") {
		t.Fatal("expected an untyped event to match nothing")
	}
	e.Type = event.TypeError
	if !e.Is(event.TypeError) {
		t.Fatal("expected ERROR event to match ERROR")
	}
}

// ----- Clone / SetExtra -----

func TestClone_DetachesExtraData(t *testing.T) {
	orig := &event.NormalizedEvent{Message: "hi"}
	orig.SetExtra("pid", "1")

	c := orig.Clone()
	c.SetExtra("pid", "2")
	c.Message = "changed"

	if v, _ := orig.Extra("pid"); v != "1" {
		t.Errorf("orig pid: want 1, got %q", v)
	}
	if orig.Message != "hi" {
		t.Errorf("orig Message: want hi, got %q", orig.Message)
	}
}

func TestClone_NilExtraDataStaysNil(t *testing.T) {
	c := (&event.NormalizedEvent{}).Clone()
	if c.ExtraData != nil {
		t.Fatalf("expected nil ExtraData, got %v", c.ExtraData)
	}
}

// ----- JSON shape -----

func TestMarshal_NullExtraData(t *testing.T) {
	b, err := json.Marshal(&event.NormalizedEvent{Logsource: event.LogsourceClient, Type: event.TypeInfo})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"logsource":"client"`, `"type":"INFO"`, `"extraData":null`, `"program":""`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
}

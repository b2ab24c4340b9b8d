package parse

// State is the mutable context shared by the parsers of one input stream.
// Parsers record the most recent real timestamp here so that a stack trace
// flushed afterwards can be stamped with it.
type State struct {
	LastTimestamp string
}

func (s *State) observe(ts string) {
	if s == nil || ts == "" {
		return
	}
	s.LastTimestamp = ts
}

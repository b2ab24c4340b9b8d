// Package resolve maps the host of an event (an IP address or hostname) to
// the name of the program running there. The pipeline uses it to fill in
// Program for events that only carry a host, typically client events.
package resolve

import "context"

// Resolver maps a host to a program name.
type Resolver interface {
	Resolve(ctx context.Context, host string) (program string, ok bool)
}

// Chain tries each resolver in order and returns the first hit.
type Chain []Resolver

func (c Chain) Resolve(ctx context.Context, host string) (string, bool) {
	for _, r := range c {
		if program, ok := r.Resolve(ctx, host); ok {
			return program, true
		}
	}
	return "", false
}

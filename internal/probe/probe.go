// Package probe runs the external diagnostic commands (ping, traceroute) for
// one line and reports how they terminated. Failures never escape as errors:
// a missing binary, a non-zero exit or a blown time budget all come back as a
// Result value so one line can never take down the run.
package probe

import "context"

// Kind selects which diagnostic to run.
type Kind int

const (
	Ping Kind = iota
	Traceroute
)

func (k Kind) String() string {
	if k == Traceroute {
		return "traceroute"
	}
	return "ping"
}

// Status classifies how a probe command terminated.
type Status int

const (
	StatusOK Status = iota
	StatusFailed
	StatusTimeout
)

// Result is the terminal value of one probe command invocation.
type Result struct {
	Status Status
	Output string // combined stdout+stderr, present even on failure
	Reason string // set when Status != StatusOK
}

// Prober runs a single diagnostic against a target. Implementations must
// return a Result for every call, never panic or block past their budget.
type Prober interface {
	Probe(ctx context.Context, kind Kind, target Target) Result
}

// Target carries the per-line parameters a probe command needs.
type Target struct {
	Host          string
	PingCount     int
	PingTimeoutMS int
	MaxHops       int
}

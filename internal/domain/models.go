package domain

// LineConfig describes one broadband line to probe. It is resolved from the
// config file at startup and never mutated afterwards, so it is safe to share
// across concurrent probes.
type LineConfig struct {
	Name               string  `json:"name"`
	Target             string  `json:"target"`
	PingCount          int     `json:"ping_count"`
	PingTimeoutMS      int     `json:"ping_timeout_ms"`
	TracerouteMaxHops  int     `json:"traceroute_max_hops"`
	LossAlertThreshold float64 `json:"packet_loss_alert_threshold"` // percent, 0-100
}

// PingMetrics is what we managed to extract from one ping run. RTT fields are
// pointers because the statistics line is absent when every packet is lost.
type PingMetrics struct {
	PacketsSent     int      `json:"packets_sent"`
	PacketsReceived int      `json:"packets_received"`
	PacketLossPct   float64  `json:"packet_loss_pct"`
	RTTMinMS        *float64 `json:"rtt_min_ms,omitempty"`
	RTTAvgMS        *float64 `json:"rtt_avg_ms,omitempty"`
	RTTMaxMS        *float64 `json:"rtt_max_ms,omitempty"`
	RTTStddevMS     *float64 `json:"rtt_stddev_ms,omitempty"`
}

// Hop is one traceroute step. Host is empty and RTTMS nil when the hop timed
// out or its line could not be parsed.
type Hop struct {
	Index int      `json:"index"`
	Host  string   `json:"host,omitempty"`
	RTTMS *float64 `json:"rtt_ms,omitempty"`
}

// TraceResult is the ordered hop sequence of one traceroute run. Empty when
// traceroute was skipped or its command failed.
type TraceResult struct {
	Hops []Hop `json:"hops"`
}

// OutcomeKind classifies how a probe terminated.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeCommandFailed
	OutcomeTimeout
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeCommandFailed:
		return "command_failed"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "invalid"
	}
}

// TraceState records what happened to the traceroute side of a line, which is
// reported separately because hop data never gates the line status.
type TraceState int

const (
	TraceRan TraceState = iota
	TraceFailed
	TraceSkipped
)

func (s TraceState) String() string {
	switch s {
	case TraceRan:
		return "ok"
	case TraceFailed:
		return "failed"
	case TraceSkipped:
		return "skipped"
	default:
		return "invalid"
	}
}

// ProbeOutcome is the single terminal result of probing one line. Exactly one
// is produced per line per run; failures arrive here as values, never as
// errors crossing the orchestrator.
type ProbeOutcome struct {
	Kind       OutcomeKind `json:"kind"`
	Reason     string      `json:"reason,omitempty"` // set when Kind != OutcomeSuccess
	Ping       PingMetrics `json:"ping"`
	Trace      TraceResult `json:"trace"`
	TraceState TraceState  `json:"trace_state"`
}

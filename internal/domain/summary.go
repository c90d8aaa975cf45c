package domain

// StatusKind is the per-line and overall health classification.
type StatusKind int

const (
	StatusOk StatusKind = iota
	StatusAlert
	StatusUnknown
)

func (k StatusKind) String() string {
	switch k {
	case StatusOk:
		return "OK"
	case StatusAlert:
		return "ALERT"
	case StatusUnknown:
		return "UNKNOWN"
	default:
		return "INVALID"
	}
}

// LineStatus pairs the classification with a human-readable reason for
// anything that is not a clean Ok.
type LineStatus struct {
	Kind   StatusKind `json:"kind"`
	Reason string     `json:"reason,omitempty"`
}

// LineResult is one line's slot in the run summary.
type LineResult struct {
	Config  LineConfig   `json:"config"`
	Outcome ProbeOutcome `json:"outcome"`
	Status  LineStatus   `json:"status"`
}

// RunSummary is the terminal artifact of one run. Lines keep the order of the
// configuration file regardless of probe completion order.
type RunSummary struct {
	Lines   []LineResult `json:"lines"`
	Overall StatusKind   `json:"overall"`
}

// OverallStatus folds per-line statuses: any Alert wins, then any Unknown,
// otherwise Ok.
func OverallStatus(lines []LineResult) StatusKind {
	overall := StatusOk
	for _, l := range lines {
		switch l.Status.Kind {
		case StatusAlert:
			return StatusAlert
		case StatusUnknown:
			overall = StatusUnknown
		}
	}
	return overall
}

// Exit codes handed to the shell. Anything that is not a clean Ok run is
// non-zero so cron jobs and scripts can branch on the result.
const (
	ExitOk      = 0
	ExitAlert   = 1
	ExitUnknown = 2
)

// ExitCode maps the overall status to the process exit code.
func ExitCode(s RunSummary) int {
	switch s.Overall {
	case StatusAlert:
		return ExitAlert
	case StatusUnknown:
		return ExitUnknown
	default:
		return ExitOk
	}
}

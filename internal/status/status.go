// Package status classifies probe outcomes against the configured alert
// thresholds.
package status

import (
	"fmt"

	"github.com/hamed0406/linewatch/internal/domain"
)

// Evaluate derives the line status from its probe outcome. Measured loss at
// or above the threshold is an Alert; a probe that failed or timed out is
// Unknown for every threshold, so missing data can never read as healthy.
// Traceroute results never gate the status, they are display-only.
func Evaluate(outcome domain.ProbeOutcome, lossThreshold float64) domain.LineStatus {
	switch outcome.Kind {
	case domain.OutcomeCommandFailed, domain.OutcomeTimeout:
		return domain.LineStatus{Kind: domain.StatusUnknown, Reason: outcome.Reason}
	}

	loss := outcome.Ping.PacketLossPct
	if loss >= lossThreshold {
		return domain.LineStatus{
			Kind:   domain.StatusAlert,
			Reason: fmt.Sprintf("packet loss %.2f%% >= threshold %.2f%%", loss, lossThreshold),
		}
	}
	return domain.LineStatus{Kind: domain.StatusOk}
}

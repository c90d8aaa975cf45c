package status

import (
	"testing"

	"github.com/hamed0406/linewatch/internal/domain"
)

func success(loss float64) domain.ProbeOutcome {
	return domain.ProbeOutcome{
		Kind: domain.OutcomeSuccess,
		Ping: domain.PingMetrics{PacketsSent: 5, PacketLossPct: loss},
	}
}

func TestEvaluate_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		name      string
		loss      float64
		threshold float64
		want      domain.StatusKind
	}{
		{"below threshold", 0, 1.5, domain.StatusOk},
		{"just below", 1.49, 1.5, domain.StatusOk},
		{"exactly at threshold alerts", 1.5, 1.5, domain.StatusAlert},
		{"above threshold", 2, 1.5, domain.StatusAlert},
		{"zero threshold always alerts", 0, 0, domain.StatusAlert},
		{"total loss", 100, 1.5, domain.StatusAlert},
		{"threshold 100 with total loss", 100, 100, domain.StatusAlert},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(success(tt.loss), tt.threshold)
			if got.Kind != tt.want {
				t.Fatalf("Evaluate(loss=%v, threshold=%v) = %v, want %v", tt.loss, tt.threshold, got.Kind, tt.want)
			}
			if tt.want == domain.StatusAlert && got.Reason == "" {
				t.Fatalf("alert must carry a reason")
			}
		})
	}
}

func TestEvaluate_FailuresAreUnknownForEveryThreshold(t *testing.T) {
	outcomes := []domain.ProbeOutcome{
		{Kind: domain.OutcomeCommandFailed, Reason: "ping could not start"},
		{Kind: domain.OutcomeTimeout, Reason: "ping did not finish within 9s"},
	}
	for _, outcome := range outcomes {
		for _, threshold := range []float64{0, 1.5, 50, 100} {
			got := Evaluate(outcome, threshold)
			if got.Kind != domain.StatusUnknown {
				t.Fatalf("outcome %v threshold %v: got %v, want Unknown", outcome.Kind, threshold, got.Kind)
			}
			if got.Reason == "" {
				t.Fatalf("unknown status must carry the failure reason")
			}
		}
	}
}

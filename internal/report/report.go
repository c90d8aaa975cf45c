// Package report renders one RunSummary into the canonical text handed to
// every notification transport, plus a more verbose rendering for the
// terminal. Both are deterministic: identical summaries produce identical
// text, byte for byte.
package report

import (
	"fmt"
	"strings"

	"github.com/hamed0406/linewatch/internal/domain"
)

// Render produces the compact one-line-per-line summary shared verbatim by
// all transports. Transports own their length limits; no truncation happens
// here.
func Render(s domain.RunSummary) string {
	var b strings.Builder
	b.WriteString("linewatch summary\n")
	for _, l := range s.Lines {
		fmt.Fprintf(&b, "- %s (%s): status=%s, loss=%s, avg=%s, traceroute=%s\n",
			l.Config.Name,
			l.Config.Target,
			statusText(l.Status),
			lossText(l),
			avgText(l),
			l.Outcome.TraceState,
		)
	}
	fmt.Fprintf(&b, "overall: %s\n", s.Overall)
	return b.String()
}

// RenderDetailed produces the per-line blocks printed to the terminal,
// including the hop list when traceroute ran.
func RenderDetailed(s domain.RunSummary) string {
	var b strings.Builder
	for _, l := range s.Lines {
		fmt.Fprintf(&b, "=== %s (%s) ===\n", l.Config.Name, l.Config.Target)
		fmt.Fprintf(&b, "Status: %s\n", statusText(l.Status))

		if l.Outcome.Kind == domain.OutcomeSuccess {
			m := l.Outcome.Ping
			fmt.Fprintf(&b, "Packet loss: %.2f%% (threshold %.2f%%)\n", m.PacketLossPct, l.Config.LossAlertThreshold)
			fmt.Fprintf(&b, "Packets: %d sent, %d received\n", m.PacketsSent, m.PacketsReceived)
			if m.RTTAvgMS != nil {
				fmt.Fprintf(&b, "RTT min/avg/max: %s/%s/%s ms", msText(m.RTTMinMS), msText(m.RTTAvgMS), msText(m.RTTMaxMS))
				if m.RTTStddevMS != nil {
					fmt.Fprintf(&b, " (stddev %s)", msText(m.RTTStddevMS))
				}
				b.WriteString("\n")
			} else {
				b.WriteString("RTT: unavailable\n")
			}
		} else {
			b.WriteString("Packet loss: unavailable (probe did not complete)\n")
		}

		switch l.Outcome.TraceState {
		case domain.TraceSkipped:
			b.WriteString("Traceroute: skipped\n")
		case domain.TraceFailed:
			b.WriteString("Traceroute: command failed\n")
		default:
			b.WriteString("Traceroute:\n")
			for _, hop := range l.Outcome.Trace.Hops {
				host := hop.Host
				if host == "" {
					host = "*"
				}
				if hop.RTTMS != nil {
					fmt.Fprintf(&b, "  %2d  %s  %.2f ms\n", hop.Index, host, *hop.RTTMS)
				} else {
					fmt.Fprintf(&b, "  %2d  %s\n", hop.Index, host)
				}
			}
			if len(l.Outcome.Trace.Hops) == 0 {
				b.WriteString("  (no hops reported)\n")
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "overall: %s\n", s.Overall)
	return b.String()
}

func statusText(st domain.LineStatus) string {
	if st.Reason == "" {
		return st.Kind.String()
	}
	return fmt.Sprintf("%s (%s)", st.Kind, st.Reason)
}

func lossText(l domain.LineResult) string {
	if l.Outcome.Kind != domain.OutcomeSuccess {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", l.Outcome.Ping.PacketLossPct)
}

func avgText(l domain.LineResult) string {
	if l.Outcome.Kind != domain.OutcomeSuccess || l.Outcome.Ping.RTTAvgMS == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f ms", *l.Outcome.Ping.RTTAvgMS)
}

func msText(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

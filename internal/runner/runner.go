// Package runner fans probe executions out across all configured lines and
// collects exactly one outcome per line, in configuration order.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/hamed0406/linewatch/internal/domain"
	"github.com/hamed0406/linewatch/internal/parse"
	"github.com/hamed0406/linewatch/internal/probe"
	"github.com/hamed0406/linewatch/internal/status"
)

// ErrNoLines is the one invariant violation that aborts a run: probing an
// empty configuration is a caller bug, not a per-line failure.
var ErrNoLines = errors.New("no lines configured")

type Runner struct {
	prober         probe.Prober
	logger         *zap.Logger
	skipTraceroute bool
}

func New(p probe.Prober, logger *zap.Logger, skipTraceroute bool) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{prober: p, logger: logger, skipTraceroute: skipTraceroute}
}

// Run probes every line concurrently and returns the summary with lines in
// the same order they were configured, regardless of completion order. All
// probe-level failures surface as per-line outcomes, never as an error.
func (r *Runner) Run(ctx context.Context, lines []domain.LineConfig) (domain.RunSummary, error) {
	if len(lines) == 0 {
		return domain.RunSummary{}, ErrNoLines
	}

	// Each goroutine owns exactly one slot, so the indexed writes need no
	// lock and the fan-in preserves configuration order by construction.
	results := make([]domain.LineResult, len(lines))
	var wg conc.WaitGroup
	for i, line := range lines {
		i, line := i, line
		wg.Go(func() {
			results[i] = r.probeLine(ctx, line)
		})
	}
	wg.Wait()

	return domain.RunSummary{Lines: results, Overall: domain.OverallStatus(results)}, nil
}

// probeLine runs the line's ping and (unless skipped) traceroute in parallel
// and folds both into the line's single terminal result.
func (r *Runner) probeLine(ctx context.Context, line domain.LineConfig) domain.LineResult {
	target := probe.Target{
		Host:          line.Target,
		PingCount:     line.PingCount,
		PingTimeoutMS: line.PingTimeoutMS,
		MaxHops:       line.TracerouteMaxHops,
	}

	var pingRes, traceRes probe.Result
	var wg conc.WaitGroup
	wg.Go(func() { pingRes = r.safeProbe(ctx, probe.Ping, target) })
	if !r.skipTraceroute {
		wg.Go(func() { traceRes = r.safeProbe(ctx, probe.Traceroute, target) })
	}
	wg.Wait()

	outcome := r.buildOutcome(line, pingRes, traceRes)
	st := status.Evaluate(outcome, line.LossAlertThreshold)

	r.logger.Info("line_probed",
		zap.String("line", line.Name),
		zap.String("target", line.Target),
		zap.String("outcome", outcome.Kind.String()),
		zap.String("status", st.Kind.String()),
		zap.Float64("loss_pct", outcome.Ping.PacketLossPct),
	)

	return domain.LineResult{Config: line, Outcome: outcome, Status: st}
}

// safeProbe is the isolation boundary: a panic inside any Prober comes back
// as a failed result for that probe alone and can never cancel or corrupt a
// sibling line.
func (r *Runner) safeProbe(ctx context.Context, kind probe.Kind, target probe.Target) (res probe.Result) {
	recovered := panics.Try(func() {
		res = r.prober.Probe(ctx, kind, target)
	})
	if recovered != nil {
		r.logger.Error("probe_panic",
			zap.String("kind", kind.String()),
			zap.String("target", target.Host),
			zap.Any("panic", recovered.Value),
		)
		res = probe.Result{
			Status: probe.StatusFailed,
			Reason: fmt.Sprintf("%s panicked: %v", kind, recovered.Value),
		}
	}
	return res
}

func (r *Runner) buildOutcome(line domain.LineConfig, pingRes, traceRes probe.Result) domain.ProbeOutcome {
	out := domain.ProbeOutcome{TraceState: domain.TraceSkipped}

	switch pingRes.Status {
	case probe.StatusOK:
		out.Kind = domain.OutcomeSuccess
		out.Ping = parse.Ping(pingRes.Output, line.PingCount)
	case probe.StatusTimeout:
		out.Kind = domain.OutcomeTimeout
		out.Reason = pingRes.Reason
	default:
		out.Kind = domain.OutcomeCommandFailed
		out.Reason = pingRes.Reason
	}

	if !r.skipTraceroute {
		if traceRes.Status == probe.StatusOK {
			out.TraceState = domain.TraceRan
			out.Trace = parse.Traceroute(traceRes.Output, line.TracerouteMaxHops)
		} else {
			out.TraceState = domain.TraceFailed
		}
	}
	return out
}

package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"time"
)

// startupMargin keeps the wall-clock budget strictly above the time the
// command itself is allowed to spend, so process startup never converts a
// slow-but-valid run into a timeout.
const startupMargin = 2 * time.Second

// perHopBudget bounds traceroute, which has no configurable timeout of its
// own: three probes per hop at the usual 5s default would stall for minutes.
const perHopBudget = 3 * time.Second

// ExecProber shells out to the OS ping/traceroute binaries.
type ExecProber struct {
	// GOOS picks the command flavor; defaults to runtime.GOOS. Overridable so
	// argument translation is testable on any platform.
	GOOS string

	// run is swapped in tests to avoid spawning real processes.
	run func(ctx context.Context, name string, args []string) (string, error)
}

func NewExecProber() *ExecProber {
	p := &ExecProber{GOOS: runtime.GOOS}
	p.run = execute
	return p
}

func (p *ExecProber) Probe(ctx context.Context, kind Kind, target Target) Result {
	name, args := command(p.GOOS, kind, target)
	budget := timeBudget(kind, target)

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	out, err := p.run(ctx, name, args)
	if err == nil {
		return Result{Status: StatusOK, Output: out}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return Result{
			Status: StatusTimeout,
			Output: out,
			Reason: fmt.Sprintf("%s did not finish within %s", kind, budget),
		}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{
			Status: StatusFailed,
			Output: out,
			Reason: fmt.Sprintf("%s %s", kind, exitErr),
		}
	}
	// Spawn failure: binary missing, not executable, etc.
	return Result{
		Status: StatusFailed,
		Output: out,
		Reason: fmt.Sprintf("%s could not start: %v", kind, err),
	}
}

// command translates line settings into the platform's ping/traceroute
// invocation.
func command(goos string, kind Kind, t Target) (string, []string) {
	if kind == Traceroute {
		if goos == "windows" {
			return "tracert", []string{"-h", strconv.Itoa(t.MaxHops), t.Host}
		}
		return "traceroute", []string{"-m", strconv.Itoa(t.MaxHops), t.Host}
	}

	if goos == "windows" {
		return "ping", []string{
			"-n", strconv.Itoa(t.PingCount),
			"-w", strconv.Itoa(t.PingTimeoutMS),
			t.Host,
		}
	}

	args := []string{"-c", strconv.Itoa(t.PingCount)}
	if t.PingTimeoutMS > 0 {
		// Linux ping takes -W in whole seconds, BSD/macOS in milliseconds.
		timeout := strconv.Itoa(t.PingTimeoutMS)
		if goos == "linux" {
			timeout = strconv.Itoa((t.PingTimeoutMS + 999) / 1000)
		}
		args = append(args, "-W", timeout)
	}
	return "ping", append(args, t.Host)
}

// timeBudget is the wall-clock cap for one probe, always strictly greater
// than what the command is configured to spend on its own.
func timeBudget(kind Kind, t Target) time.Duration {
	if kind == Traceroute {
		hops := t.MaxHops
		if hops <= 0 {
			hops = 30
		}
		return time.Duration(hops)*perHopBudget + startupMargin
	}
	count := t.PingCount
	if count <= 0 {
		count = 1
	}
	// One packet per second plus the configured per-reply wait.
	return time.Duration(count)*time.Second +
		time.Duration(t.PingTimeoutMS)*time.Millisecond +
		startupMargin
}

func execute(ctx context.Context, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return combinedOutput(stdout.Bytes(), stderr.Bytes()), err
}

// combinedOutput appends stderr after stdout so diagnostics printed on either
// stream reach the parser.
func combinedOutput(stdout, stderr []byte) string {
	out := string(stdout)
	if len(stderr) == 0 {
		return out
	}
	if out != "" && out[len(out)-1] != '\n' {
		out += "\n"
	}
	return out + string(stderr)
}

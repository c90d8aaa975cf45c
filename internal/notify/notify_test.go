package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// recorder is a fake transport capturing what it was asked to deliver.
type recorder struct {
	title, text string
	calls       int
	err         error
}

func (r *recorder) Send(ctx context.Context, title, text string) error {
	r.calls++
	r.title, r.text = title, text
	return r.err
}

func TestMulti_AllTransportsGetIdenticalText(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := Multi{a, nil, b}
	if err := m.Send(context.Background(), "title", "report"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("every transport must be called once: %d %d", a.calls, b.calls)
	}
	if a.text != b.text || a.text != "report" {
		t.Fatalf("transports received different text: %q vs %q", a.text, b.text)
	}
}

func TestMulti_FailureDoesNotStopOthers(t *testing.T) {
	a := &recorder{err: errors.New("smtp down")}
	b := &recorder{err: errors.New("telegram down")}
	c := &recorder{}
	err := Multi{a, b, c}.Send(context.Background(), "t", "x")
	if c.calls != 1 {
		t.Fatalf("later transport skipped after failure")
	}
	if err == nil {
		t.Fatalf("expected combined error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "smtp down") || !strings.Contains(msg, "telegram down") {
		t.Fatalf("both failures must be reported: %v", err)
	}
}

func TestStdout(t *testing.T) {
	var buf bytes.Buffer
	s := &Stdout{Out: &buf}
	if err := s.Send(context.Background(), "linewatch report", "body\n"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got := buf.String(); got != "linewatch report\nbody\n" {
		t.Fatalf("stdout output: %q", got)
	}
}

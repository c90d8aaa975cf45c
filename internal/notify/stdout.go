package notify

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Stdout writes the report to a terminal stream. It is the default transport
// and always enabled.
type Stdout struct {
	Out io.Writer
}

func NewStdout() *Stdout {
	return &Stdout{Out: os.Stdout}
}

func (s *Stdout) Send(ctx context.Context, title, text string) error {
	_, err := fmt.Fprintf(s.Out, "%s\n%s", title, text)
	return err
}

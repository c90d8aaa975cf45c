package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/linewatch/internal/config"
	"github.com/hamed0406/linewatch/internal/domain"
	"github.com/hamed0406/linewatch/internal/logging"
	"github.com/hamed0406/linewatch/internal/notify"
	"github.com/hamed0406/linewatch/internal/probe"
	"github.com/hamed0406/linewatch/internal/report"
	"github.com/hamed0406/linewatch/internal/runner"
)

const reportTitle = "linewatch report"

type options struct {
	configPath     string
	skipTraceroute bool
	logDir         string
	verbose        bool

	emailSMTP     string
	emailPort     int
	emailUsername string
	emailPassword string
	emailFrom     string
	emailTo       []string

	telegramToken  string
	telegramChatID string
}

// exitCode carries the run result out of cobra so main can hand it to the
// shell. Ok runs exit 0; alerting or unknown runs exit non-zero.
var exitCode = domain.ExitOk

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "linewatch:", err)
		os.Exit(domain.ExitUnknown)
	}
	os.Exit(exitCode)
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "linewatch",
		Short:         "Fixed broadband diagnostics runner",
		Long:          "Probes every configured line with ping and traceroute, evaluates packet-loss thresholds and dispatches one consolidated report.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "lines.toml", "path to the lines configuration file")
	flags.BoolVar(&opts.skipTraceroute, "skip-traceroute", false, "skip traceroute checks")
	flags.StringVar(&opts.logDir, "log-dir", "logs", "directory for diagnostic logs")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	flags.StringVar(&opts.emailSMTP, "email-smtp", "", "SMTP server for email notifications")
	flags.IntVar(&opts.emailPort, "email-port", 587, "SMTP port")
	flags.StringVar(&opts.emailUsername, "email-username", "", "SMTP username")
	flags.StringVar(&opts.emailPassword, "email-password", "", "SMTP password")
	flags.StringVar(&opts.emailFrom, "email-from", "", "sender address for notifications")
	flags.StringSliceVar(&opts.emailTo, "email-to", nil, "recipient addresses (repeat or comma separated)")
	flags.StringVar(&opts.telegramToken, "telegram-token", "", "Telegram bot token")
	flags.StringVar(&opts.telegramChatID, "telegram-chat-id", "", "Telegram chat ID")
	return cmd
}

func run(ctx context.Context, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Fail on half-configured transports before spending time on probes.
	notifiers, err := buildNotifiers(opts)
	if err != nil {
		return err
	}

	lines, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(opts.logDir, opts.verbose)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	summary, err := runner.New(probe.NewExecProber(), logger, opts.skipTraceroute).Run(ctx, lines)
	if err != nil {
		return err
	}
	exitCode = domain.ExitCode(summary)

	// Hop-by-hop detail for the terminal, then the canonical report text,
	// identical for every transport.
	fmt.Print(report.RenderDetailed(summary))
	text := report.Render(summary)

	if err := notifiers.Send(ctx, reportTitle, text); err != nil {
		logger.Error("notify_failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "linewatch: notification delivery failed:", err)
	}
	return nil
}

func buildNotifiers(opts options) (notify.Multi, error) {
	notifiers := notify.Multi{notify.NewStdout()}

	emailRequested := opts.emailSMTP != "" || opts.emailUsername != "" ||
		opts.emailPassword != "" || opts.emailFrom != "" || len(opts.emailTo) > 0
	if emailRequested {
		switch {
		case opts.emailSMTP == "":
			return nil, errors.New("--email-smtp required when enabling email notifications")
		case opts.emailFrom == "":
			return nil, errors.New("--email-from required when enabling email notifications")
		case len(opts.emailTo) == 0:
			return nil, errors.New("at least one --email-to recipient required when enabling email notifications")
		}
		notifiers = append(notifiers, notify.NewEmail(notify.EmailConfig{
			Host:     opts.emailSMTP,
			Port:     opts.emailPort,
			Username: opts.emailUsername,
			Password: opts.emailPassword,
			From:     opts.emailFrom,
			To:       opts.emailTo,
		}))
	}

	telegramRequested := opts.telegramToken != "" || opts.telegramChatID != ""
	if telegramRequested {
		switch {
		case opts.telegramToken == "":
			return nil, errors.New("--telegram-token required when enabling Telegram notifications")
		case opts.telegramChatID == "":
			return nil, errors.New("--telegram-chat-id required when enabling Telegram notifications")
		}
		notifiers = append(notifiers, notify.NewTelegram(opts.telegramToken, opts.telegramChatID))
	}

	return notifiers, nil
}

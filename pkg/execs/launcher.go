package execs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/senenv/shellmenu/pkg/log"
)

var (
	// ErrLaunch is returned when the process could not be started.
	ErrLaunch = errors.New("launch")

	// ErrEmptyCommandLine is returned when there is nothing to start.
	ErrEmptyCommandLine = errors.New("empty command line")

	// ErrUnterminatedFrame is returned when a command line opens the
	// interpreter frame with a quote but does not close it.
	ErrUnterminatedFrame = errors.New("unterminated command line frame")
)

// Launcher starts an external process for a command line and returns
// without waiting for it.
type Launcher interface {
	Launch(ctx context.Context, commandLine string) error
}

// ProcessLauncher is a [Launcher] that starts real processes.
type ProcessLauncher struct {
	tracer  trace.Tracer
	cfg     *LauncherConfig
	baseEnv []string
}

// NewProcessLauncher creates a new [ProcessLauncher].
// It accepts a base environment, which usually will be from [os.Environ].
func NewProcessLauncher(cfg *LauncherConfig, baseEnv []string) *ProcessLauncher {
	return &ProcessLauncher{
		tracer:  otel.Tracer("launcher"),
		cfg:     cfg,
		baseEnv: baseEnv,
	}
}

func (l *ProcessLauncher) Launch(ctx context.Context, commandLine string) error {
	ctx, span := l.tracer.Start(ctx, "launch", trace.WithAttributes(
		attribute.String("interpreter", l.cfg.Interpreter),
		attribute.String("command_line", commandLine),
	))
	defer span.End()

	logger := log.WithContext(ctx).With(
		slog.String("interpreter", l.cfg.Interpreter),
		slog.String("command_line", commandLine),
	)

	if commandLine == "" {
		span.SetStatus(codes.Error, ErrEmptyCommandLine.Error())

		return ErrEmptyCommandLine
	}

	start := time.Now()

	pid, err := startProcess(l.cfg.Interpreter, l.cfg.InterpreterFlag, commandLine, l.cfg.Environment(l.baseEnv))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "start process")
		logger.DebugContext(ctx, "process failed to start", slog.Any("error", err))

		return fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	span.SetAttributes(attribute.Int("pid", pid))
	logger.DebugContext(ctx, "process started",
		slog.Int("pid", pid),
		slog.Duration("duration", time.Since(start)),
	)

	return nil
}

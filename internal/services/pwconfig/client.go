package pwconfig

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"pwtune/internal/logging"
	"pwtune/internal/services"
)

// DefaultBinary is the pw-config executable looked up on PATH when none is configured.
const DefaultBinary = "pw-config"

// DefaultTemplateDir is the install-time location of the packaged configuration templates.
const DefaultTemplateDir = "/usr/share/pipewire"

// Fetcher returns the raw text of the three pw-config queries the model consumes.
type Fetcher interface {
	Current(ctx context.Context, file, section string) (string, error)
	Defaults(ctx context.Context, file, section string) (string, error)
	Paths(ctx context.Context, file string) (string, error)
}

// Executor abstracts command execution for testability. Only stdout is returned;
// failure is signalled through the error alone.
type Executor interface {
	Output(ctx context.Context, binary string, args []string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger attaches a logger used for raw output debugging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client wraps pw-config CLI interactions.
type Client struct {
	binary      string
	templateDir string
	timeout     time.Duration
	exec        Executor
	logger      *slog.Logger
}

// New constructs a pw-config client. A zero timeout leaves invocations bounded
// only by the caller's context.
func New(binary, templateDir string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("pw-config binary required")
	}
	templateDir = strings.TrimSpace(templateDir)
	if templateDir == "" {
		templateDir = DefaultTemplateDir
	}
	if timeoutSeconds < 0 {
		return nil, fmt.Errorf("pw-config timeout must be non-negative, got %d", timeoutSeconds)
	}
	client := &Client{
		binary:      binary,
		templateDir: templateDir,
		timeout:     time.Duration(timeoutSeconds) * time.Second,
		exec:        commandExecutor{},
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "pwconfig")
	return client, nil
}

// Binary returns the configured executable.
func (c *Client) Binary() string {
	return c.binary
}

// TemplateDir returns the directory the packaged-default query points at.
func (c *Client) TemplateDir() string {
	return c.templateDir
}

// Current runs the live dump query for section and returns its JSON text.
func (c *Client) Current(ctx context.Context, file, section string) (string, error) {
	return c.run(ctx, "current", CurrentArgs(file, section))
}

// Defaults runs the packaged-default query for section and returns the dialect text.
func (c *Client) Defaults(ctx context.Context, file, section string) (string, error) {
	return c.run(ctx, "defaults", DefaultsArgs(file, c.templateDir, section))
}

// Paths runs the search-path listing query and returns its JSON text.
func (c *Client) Paths(ctx context.Context, file string) (string, error) {
	return c.run(ctx, "paths", PathsArgs(file))
}

// CurrentArgs builds the argument list for the live dump query.
func CurrentArgs(file, section string) []string {
	return []string{"--name", file, "list", "-LNr", section}
}

// DefaultsArgs builds the argument list for the packaged-default query.
func DefaultsArgs(file, templateDir, section string) []string {
	return []string{"--name", file, "list", "-N", "-p", templateDir, section}
}

// PathsArgs builds the argument list for the search-path listing query.
func PathsArgs(file string) []string {
	return []string{"--name", file, "paths", "-LNr"}
}

func (c *Client) run(ctx context.Context, query string, args []string) (string, error) {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	logger := logging.WithContext(ctx, c.logger)
	logger.Debug("running pw-config",
		logging.String("query", query),
		logging.String("binary", c.binary),
		logging.String("args", strings.Join(args, " ")),
	)

	started := time.Now()
	output, err := c.exec.Output(runCtx, c.binary, args)
	if err != nil {
		message := describeFailure(err)
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			message = fmt.Sprintf("timed out after %s", c.timeout)
		}
		return "", services.Wrap(services.ErrProcessInvocation, "pw-config", query, message, err)
	}

	text := string(output)
	logger.Debug("pw-config output",
		logging.String("query", query),
		logging.Int("bytes", len(output)),
		logging.Duration("elapsed", time.Since(started)),
		logging.String(logging.FieldRaw, text),
	)
	return text, nil
}

func describeFailure(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Sprintf("exit status %d", exitErr.ExitCode())
	}
	if errors.Is(err, exec.ErrNotFound) {
		return "executable not found"
	}
	return "invocation failed"
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.Output()
}

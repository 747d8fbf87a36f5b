// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/telekom/stuck-notifier/pkg/check"
	"github.com/telekom/stuck-notifier/pkg/config"
)

// ExitCode is the process exit status.
type ExitCode int

const (
	Ok               ExitCode = 0
	Error            ExitCode = 1
	WrongCommandLine ExitCode = 2
)

// Handler runs a command with the arguments that follow its name.
type Handler func(ctx context.Context, args []string) ExitCode

// Command is an entry of the fixed command registry.
type Command struct {
	Name    string
	Handler Handler
}

// Operation is implemented by check.Operation.
type Operation interface {
	RunCheck(ctx context.Context, args []string) (check.Result, error)
}

// Config holds the dependencies of an App. Zero values fall back to the
// process defaults.
type Config struct {
	Out io.Writer
	Err io.Writer
	// ConfigPath is the default for the --config flag.
	ConfigPath string
	// Logger replaces the logger built from the --debug flag.
	Logger *zap.SugaredLogger
	// NewOperation builds the check operation once settings are loaded.
	NewOperation func(settings config.Settings, log *zap.SugaredLogger) Operation
}

func DefaultConfig() Config {
	return Config{
		Out:        os.Stdout,
		Err:        os.Stderr,
		ConfigPath: config.DefaultPath(),
		NewOperation: func(settings config.Settings, log *zap.SugaredLogger) Operation {
			return check.New(settings, log)
		},
	}
}

// App owns the command registry.
type App struct {
	cfg      Config
	commands []Command
}

func New(cfg Config) *App {
	def := DefaultConfig()
	if cfg.Out == nil {
		cfg.Out = def.Out
	}
	if cfg.Err == nil {
		cfg.Err = def.Err
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = def.ConfigPath
	}
	if cfg.NewOperation == nil {
		cfg.NewOperation = def.NewOperation
	}

	app := &App{cfg: cfg}
	app.commands = []Command{
		{Name: NotifyCommandName, Handler: app.runNotify},
		{Name: VersionCommandName, Handler: app.runVersion},
	}
	return app
}

// Run executes the process arguments (without the program name) with the
// default configuration.
func Run(ctx context.Context, args []string) ExitCode {
	return New(DefaultConfig()).Run(ctx, args)
}

// Run dispatches args and returns the exit code.
func (a *App) Run(ctx context.Context, args []string) ExitCode {
	if IsHelpCommandLine(args) {
		a.printUsage(a.cfg.Out)
		return Ok
	}

	if len(args) > 0 && args[0] != "" {
		if cmd, ok := a.lookup(args[0]); ok {
			code := cmd.Handler(ctx, args[1:])
			if code == WrongCommandLine {
				a.printUsage(a.cfg.Err)
			}
			return code
		}
		_, _ = fmt.Fprintf(a.cfg.Err, "Error: unknown command %q\n", args[0])
	}

	a.printUsage(a.cfg.Err)
	return WrongCommandLine
}

// Commands returns the registered commands in lookup order.
func (a *App) Commands() []Command {
	return append([]Command(nil), a.commands...)
}

func (a *App) lookup(name string) (Command, bool) {
	for _, c := range a.commands {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Command{}, false
}

var helpTokens = []string{"-?", "/?", "?", "--help", "/help", "help"}

// IsHelpCommandLine reports whether args is a single help token.
func IsHelpCommandLine(args []string) bool {
	if len(args) != 1 || args[0] == "" {
		return false
	}
	for _, token := range helpTokens {
		if strings.EqualFold(args[0], token) {
			return true
		}
	}
	return false
}

package engine

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/finlab/mongolab/pkg/logger"
)

// RunFunc executes one engine command and returns its combined output.
// Swappable so tests never spawn subprocesses.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Engine wraps the container engine CLI (docker by default).
type Engine struct {
	bin string
	run RunFunc
}

func New(bin string) *Engine {
	return &Engine{bin: bin, run: runCommand}
}

// NewWithRunner builds an Engine with a custom command runner.
func NewWithRunner(bin string, run RunFunc) *Engine {
	return &Engine{bin: bin, run: run}
}

// Available reports whether the engine daemon answers a status query. This is
// a capability probe: every failure (binary missing, daemon down, permission
// denied) means "not available", never an error.
func (e *Engine) Available(ctx context.Context) bool {
	out, err := e.run(ctx, e.bin, "info")
	if err != nil {
		logger.Debugf("%s info failed: %v: %s", e.bin, err, strings.TrimSpace(string(out)))
		return false
	}
	return true
}

// ComposeUp brings up all services declared in file, detached.
func (e *Engine) ComposeUp(ctx context.Context, file string) error {
	out, err := e.run(ctx, e.bin, "compose", "-f", file, "up", "-d")
	if err != nil {
		return fmt.Errorf("%s compose up: %w: %s", e.bin, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// ComposeDown stops and removes the services declared in file.
func (e *Engine) ComposeDown(ctx context.Context, file string) error {
	out, err := e.run(ctx, e.bin, "compose", "-f", file, "down")
	if err != nil {
		return fmt.Errorf("%s compose down: %w: %s", e.bin, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// ServiceStatus returns the raw status output for one declared service. The
// caller interprets it; this wrapper does not parse the engine's JSON.
func (e *Engine) ServiceStatus(ctx context.Context, service string) (string, error) {
	out, err := e.run(ctx, e.bin, "compose", "ps", service, "--format", "json")
	if err != nil {
		return "", fmt.Errorf("%s compose ps %s: %w", e.bin, service, err)
	}
	return string(out), nil
}

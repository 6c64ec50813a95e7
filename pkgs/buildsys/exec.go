package buildsys

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Command is a single external program invocation. Arguments are passed
// to the program as-is, no shell is involved.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env overrides entries of the current process environment.
	Env map[string]string

	Stdout io.Writer
	Stderr io.Writer
}

func (c *Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Executor runs commands to completion.
type Executor interface {
	// Run blocks until cmd exits. A command that exits non-zero or cannot
	// be started yields an *ExitError.
	Run(ctx context.Context, cmd *Command) error
}

// ExitError reports a failed command. Code is the exit status, or -1 when
// the process could not be started or did not exit normally.
type ExitError struct {
	Cmd  string
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("%s: %v", e.Cmd, e.Err)
	}
	return fmt.Sprintf("%s: exit status %d", e.Cmd, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code carried by err, if any.
func ExitCode(err error) (int, bool) {
	var ee *ExitError
	if errors.As(err, &ee) && ee.Code > 0 {
		return ee.Code, true
	}
	return 0, false
}

// OSExecutor runs commands as child processes of the current one.
//
// The context is only consulted before the process starts; a running
// build is never interrupted.
type OSExecutor struct{}

var _ Executor = OSExecutor{}

func (OSExecutor) Run(ctx context.Context, c *Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if len(c.Env) > 0 {
		cmd.Env = MergeEnv(os.Environ(), c.Env)
	}

	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return &ExitError{Cmd: c.String(), Code: ee.ExitCode(), Err: err}
		}
		return &ExitError{Cmd: c.String(), Code: -1, Err: err}
	}
	return nil
}

// MergeEnv applies override on top of a KEY=VALUE list. The result is
// sorted by key.
func MergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}

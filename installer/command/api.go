package command

import (
	"github.com/Cloud-Foundations/metal-installer/lib/log"
)

// Command describes one invocation of an external programme.
type Command struct {
	Name  string
	Args  []string
	Env   []string // Extra NAME=value variables, added to the environment.
	Stdin string   // Fed to the programme on standard input if non-empty.
}

// Error is returned when a command could not be started or exited with a
// non-zero status.
type Error struct {
	Command string
	Err     error
	Output  []byte
}

// Runner runs external commands on the host.
type Runner interface {
	// LookPath returns the full pathname of the named programme.
	LookPath(name string) (string, error)
	// Output runs cmd and returns its standard output. Standard error is
	// included in the error if the command fails.
	Output(cmd Command) ([]byte, error)
	// Run runs cmd, discarding its output unless it fails.
	Run(cmd Command) error
}

type execRunner struct {
	logger log.DebugLogger
}

// New returns a Runner which executes commands with os/exec, logging each
// command line at debug level 0.
func New(logger log.DebugLogger) Runner {
	return &execRunner{logger: logger}
}

// String returns the command as a shell-quoted line, including environment
// assignments.
func (cmd Command) String() string {
	return cmd.string()
}

func (e *Error) Error() string {
	return e.error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (r *execRunner) LookPath(name string) (string, error) {
	return r.lookPath(name)
}

func (r *execRunner) Output(cmd Command) ([]byte, error) {
	return r.output(cmd)
}

func (r *execRunner) Run(cmd Command) error {
	return r.run(cmd)
}

// Package testrunner provides a scripted command.Runner for tests. Commands
// are recorded rather than executed and their results come from handlers
// registered per programme name.
package testrunner

import (
	"sync"

	"github.com/Cloud-Foundations/metal-installer/installer/command"
)

// HandlerFunc produces the standard output and error for a command.
type HandlerFunc func(cmd command.Command) ([]byte, error)

type Runner struct {
	mutex    sync.Mutex
	calls    []command.Command
	events   []string
	handlers map[string]HandlerFunc
	missing  map[string]struct{}
}

func New() *Runner {
	return &Runner{
		handlers: make(map[string]HandlerFunc),
		missing:  make(map[string]struct{}),
	}
}

// Calls returns the commands run so far, in order.
func (r *Runner) Calls() []command.Command {
	return r.getCalls()
}

// Events returns the journal of commands run and events recorded with Record,
// in order. Commands appear as their String form.
func (r *Runner) Events() []string {
	return r.getEvents()
}

// Fail makes every command run with programme name fail with err.
func (r *Runner) Fail(name string, err error) {
	r.Handle(name, func(command.Command) ([]byte, error) { return nil, err })
}

// Handle registers fn to produce the results for programme name.
func (r *Runner) Handle(name string, fn HandlerFunc) {
	r.handle(name, fn)
}

// Missing makes LookPath fail for programme name.
func (r *Runner) Missing(name string) {
	r.setMissing(name)
}

// Names returns the programme names of the commands run so far, in order.
func (r *Runner) Names() []string {
	return r.names()
}

// Record adds an event (such as a mount) to the journal.
func (r *Runner) Record(event string) {
	r.record(event)
}

func (r *Runner) LookPath(name string) (string, error) {
	return r.lookPath(name)
}

func (r *Runner) Output(cmd command.Command) ([]byte, error) {
	return r.run(cmd)
}

func (r *Runner) Run(cmd command.Command) error {
	_, err := r.run(cmd)
	return err
}

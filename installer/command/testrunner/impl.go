package testrunner

import (
	"os/exec"
	"path/filepath"

	"github.com/Cloud-Foundations/metal-installer/installer/command"
)

func (r *Runner) getCalls() []command.Command {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	calls := make([]command.Command, len(r.calls))
	copy(calls, r.calls)
	return calls
}

func (r *Runner) getEvents() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	events := make([]string, len(r.events))
	copy(events, r.events)
	return events
}

func (r *Runner) handle(name string, fn HandlerFunc) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.handlers[name] = fn
}

func (r *Runner) lookPath(name string) (string, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.missing[name]; ok {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return filepath.Join("/usr/bin", name), nil
}

func (r *Runner) names() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	names := make([]string, 0, len(r.calls))
	for _, cmd := range r.calls {
		names = append(names, cmd.Name)
	}
	return names
}

func (r *Runner) record(event string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.events = append(r.events, event)
}

func (r *Runner) run(cmd command.Command) ([]byte, error) {
	r.mutex.Lock()
	r.calls = append(r.calls, cmd)
	r.events = append(r.events, cmd.String())
	handler := r.handlers[cmd.Name]
	r.mutex.Unlock()
	if handler == nil {
		return nil, nil
	}
	output, err := handler(cmd)
	if err != nil {
		return output, &command.Error{
			Command: cmd.String(),
			Err:     err,
			Output:  output,
		}
	}
	return output, nil
}

func (r *Runner) setMissing(name string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.missing[name] = struct{}{}
}

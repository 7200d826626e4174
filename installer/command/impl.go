package command

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

func (cmd Command) string() string {
	words := make([]string, 0, len(cmd.Env)+len(cmd.Args)+1)
	words = append(words, cmd.Env...)
	words = append(words, cmd.Name)
	words = append(words, cmd.Args...)
	return shellquote.Join(words...)
}

func (e *Error) error() string {
	output := strings.TrimSpace(string(e.Output))
	if output == "" {
		return fmt.Sprintf("error running: %s: %s", e.Command, e.Err)
	}
	return fmt.Sprintf("error running: %s: %s, output: %s",
		e.Command, e.Err, output)
}

func (r *execRunner) lookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *execRunner) makeCmd(cmd Command) *exec.Cmd {
	execCmd := exec.Command(cmd.Name, cmd.Args...)
	execCmd.WaitDelay = time.Second
	if len(cmd.Env) > 0 {
		execCmd.Env = append(os.Environ(), cmd.Env...)
	}
	if cmd.Stdin != "" {
		execCmd.Stdin = strings.NewReader(cmd.Stdin)
	}
	r.logger.Debugf(0, "running: %s\n", cmd)
	return execCmd
}

func (r *execRunner) output(cmd Command) ([]byte, error) {
	execCmd := r.makeCmd(cmd)
	stderr := &bytes.Buffer{}
	execCmd.Stderr = stderr
	output, err := execCmd.Output()
	if err != nil {
		return output, &Error{
			Command: cmd.String(),
			Err:     err,
			Output:  stderr.Bytes(),
		}
	}
	return output, nil
}

func (r *execRunner) run(cmd Command) error {
	execCmd := r.makeCmd(cmd)
	output, err := execCmd.CombinedOutput()
	if err != nil {
		return &Error{Command: cmd.String(), Err: err, Output: output}
	}
	r.logger.Debugf(2, "output: %s\n", output)
	return nil
}

package commands

import (
	"io"

	"github.com/Cloud-Foundations/metal-installer/lib/log"
)

type CommandFunc func([]string, log.DebugLogger) error

type Command struct {
	Command string
	Args    string
	MinArgs int
	MaxArgs int
	CmdFunc CommandFunc
}

func PrintCommands(writer io.Writer, commands []Command) {
	printCommands(writer, commands)
}

// RunCommands will find the command named by args[0] and run it with the
// remaining arguments. If args is empty, defaultCommand is run. The return
// value is a process exit status: 0 on success, 1 if the command failed and 2
// for a usage error (after calling printUsage).
func RunCommands(commands []Command, args []string, defaultCommand string,
	printUsage func(), errWriter io.Writer, logger log.DebugLogger) int {
	return runCommands(commands, args, defaultCommand, printUsage, errWriter,
		logger)
}

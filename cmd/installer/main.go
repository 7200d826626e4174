//go:build linux
// +build linux

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/Cloud-Foundations/metal-installer/lib/constants"
	"github.com/Cloud-Foundations/metal-installer/lib/flags/commands"
	"github.com/Cloud-Foundations/metal-installer/lib/flags/loadflags"
	"github.com/Cloud-Foundations/metal-installer/lib/log/debuglogger"
	"github.com/Cloud-Foundations/tricorder/go/tricorder"
)

var (
	cleanupOnFailure = flag.Bool("cleanupOnFailure", false,
		"If true, unmount the target when a phase fails")
	configFile = flag.String("configFile", "",
		"Name of JSON file with configuration overrides")
	logDebugLevel = flag.Int("logDebugLevel", -1, "Debug log level")
	mountPoint    = flag.String("mountPoint", "",
		"Mount point for new root file-system (overrides configuration)")
	portNum = flag.Uint("portNum", 0, fmt.Sprintf(
		"Port number to serve status page and metrics on, e.g. %d (0: disabled)",
		constants.InstallerPortNumber))
	resolvConf = flag.String("resolvConf", constants.ResolvConfFile,
		"Resolver configuration used for the network check")
	revealPasswords = flag.Bool("revealPasswords", false,
		"If true, show passwords in the summary and configuration")
	sysfsDirectory = flag.String("sysfsDirectory", constants.SysfsDirectory,
		"Directory where sysfs is mounted")
	tftpDirectory = flag.String("tftpDirectory", constants.TftpDirectory,
		"Directory to write configuration fetched with TFTP into")
	tftpServerHostname = flag.String("tftpServerHostname", "",
		"Hostname of TFTP server to fetch configuration overrides from")

	processStartTime = time.Now()
)

func printUsage() {
	w := flag.CommandLine.Output()
	fmt.Fprintln(w,
		"Usage: metal-installer [flags...] [command [args...]]")
	fmt.Fprintln(w, "Common flags:")
	flag.PrintDefaults()
	fmt.Fprintln(w, "Commands:")
	commands.PrintCommands(w, subcommands)
}

var subcommands = []commands.Command{
	{Command: "install", Args: "", MinArgs: 0, MaxArgs: 0, CmdFunc: installSubcommand},
	{Command: "partition-names", Args: "device", MinArgs: 1, MaxArgs: 1, CmdFunc: partitionNamesSubcommand},
	{Command: "preflight", Args: "", MinArgs: 0, MaxArgs: 0, CmdFunc: preflightSubcommand},
	{Command: "show-config", Args: "", MinArgs: 0, MaxArgs: 0, CmdFunc: showConfigSubcommand},
}

func main() {
	if err := loadflags.LoadForDaemon("metal-installer"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flag.Usage = printUsage
	flag.Parse()
	tricorder.RegisterFlags()
	logger := debuglogger.New(stdlog.New(os.Stderr, "", 0))
	logger.SetLevel(int16(*logDebugLevel))
	os.Exit(commands.RunCommands(subcommands, flag.Args(), "install",
		printUsage, os.Stderr, logger))
}

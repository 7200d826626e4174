//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/installer/mount"
	"github.com/Cloud-Foundations/metal-installer/installer/phases"
	"github.com/Cloud-Foundations/metal-installer/installer/preflight"
	"github.com/Cloud-Foundations/metal-installer/installer/prompt"
	"github.com/Cloud-Foundations/metal-installer/installer/sysconfig"
	"github.com/Cloud-Foundations/metal-installer/lib/constants"
	"github.com/Cloud-Foundations/metal-installer/lib/fsutil"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
	"github.com/Cloud-Foundations/metal-installer/lib/log/filelogger"
	"github.com/Cloud-Foundations/metal-installer/lib/osutil"
)

func installSubcommand(args []string, logger log.DebugLogger) error {
	fileLogger, err := filelogger.New(
		filepath.Join(constants.LogDirectory, "latest"),
		filelogger.Options{
			AlsoLogToStderr: true,
			DebugLevel:      int16(*logDebugLevel),
			StartTime:       processStartTime,
		})
	if err != nil {
		return fmt.Errorf("error creating log file: %s", err)
	}
	defer fileLogger.Close()
	return install(fileLogger)
}

func copyLogs(fileLogger *filelogger.Logger, session *mount.Session) error {
	if err := fileLogger.Flush(); err != nil {
		return err
	}
	filename, err := sysconfig.TargetPath(session.RootDir,
		filepath.Join(constants.LogDirectory, "log"))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), fsutil.DirPerms); err != nil {
		return err
	}
	return fsutil.CopyFile(filename, fileLogger.Filename(),
		fsutil.PublicFilePerms)
}

func install(fileLogger *filelogger.Logger) error {
	var logger log.DebugLogger = fileLogger
	installConfig, err := loadConfig(logger)
	if err != nil {
		return err
	}
	tracker := phases.NewTracker()
	if err := tracker.RegisterMetrics("installer"); err != nil {
		logger.Printf("error registering metrics: %s\n", err)
	}
	if *portNum > 0 {
		if err := startServer(*portNum, tracker, logger); err != nil {
			logger.Printf("cannot start status server: %s\n", err)
		}
	}
	prompter := prompt.NewConsole(os.Stdin, os.Stdout)
	_, err = phases.Install(installConfig, phases.Params{
		CleanupOnFailure: *cleanupOnFailure,
		Color:            !color.NoColor,
		CopyLogs: func(session *mount.Session) error {
			return copyLogs(fileLogger, session)
		},
		Logger: logger,
		Prober: preflight.NewNetworkProber(
			preflight.ProbeOptions{ResolvConf: *resolvConf}, logger),
		Prompter:        prompter,
		RevealPasswords: *revealPasswords,
		Runner:          command.New(logger),
		SysfsDirectory:  *sysfsDirectory,
		Tracker:         tracker,
	})
	if err != nil {
		return err
	}
	reboot, err := prompter.Confirm("Installation complete. Reboot now?")
	if err != nil {
		return err
	}
	if !reboot {
		logger.Println("not rebooting: remove the installation medium first")
		return nil
	}
	return osutil.HardReboot(logger)
}

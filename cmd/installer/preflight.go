//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"

	"github.com/Cloud-Foundations/metal-installer/installer/preflight"
	"github.com/Cloud-Foundations/metal-installer/installer/prompt"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
)

func preflightSubcommand(args []string, logger log.DebugLogger) error {
	if err := preflightCheck(logger); err != nil {
		return fmt.Errorf("error running preflight checks: %s", err)
	}
	return nil
}

func preflightCheck(logger log.DebugLogger) error {
	installConfig, err := loadConfig(logger)
	if err != nil {
		return err
	}
	err = preflight.Check(installConfig, preflight.Params{
		Logger: logger,
		Prober: preflight.NewNetworkProber(
			preflight.ProbeOptions{ResolvConf: *resolvConf}, logger),
		Prompter:       prompt.NewConsole(os.Stdin, os.Stdout),
		SysfsDirectory: *sysfsDirectory,
	})
	if err != nil {
		return err
	}
	logger.Println("preflight checks passed")
	return nil
}

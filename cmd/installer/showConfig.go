//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"

	"github.com/Cloud-Foundations/metal-installer/installer/report"
	"github.com/Cloud-Foundations/metal-installer/lib/json"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
)

func showConfigSubcommand(args []string, logger log.DebugLogger) error {
	if err := showConfig(logger); err != nil {
		return fmt.Errorf("error showing configuration: %s", err)
	}
	return nil
}

func showConfig(logger log.DebugLogger) error {
	installConfig, err := loadConfig(logger)
	if err != nil {
		return err
	}
	if !*revealPasswords {
		if installConfig.RootPassword != "" {
			installConfig.RootPassword = report.PasswordMask
		}
		if installConfig.UserPassword != "" {
			installConfig.UserPassword = report.PasswordMask
		}
	}
	return json.WriteWithIndent(os.Stdout, "    ", installConfig)
}

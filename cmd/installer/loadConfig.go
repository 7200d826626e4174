//go:build linux
// +build linux

package main

import (
	"github.com/Cloud-Foundations/metal-installer/installer/config"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

// loadConfig returns the compiled-in configuration overlaid with the file
// from the TFTP server (if any) and then the -configFile file (if any).
func loadConfig(logger log.DebugLogger) (proto.InstallConfig, error) {
	installConfig := config.Default()
	if *tftpServerHostname != "" {
		filename, err := config.FetchFromTftp(*tftpServerHostname,
			*tftpDirectory, logger)
		if err != nil {
			return installConfig, err
		}
		if filename != "" {
			installConfig, err = config.Load(installConfig, filename)
			if err != nil {
				return installConfig, err
			}
			logger.Printf("loaded configuration from: %s\n", filename)
		}
	}
	if *configFile != "" {
		var err error
		installConfig, err = config.Load(installConfig, *configFile)
		if err != nil {
			return installConfig, err
		}
		logger.Debugf(0, "loaded configuration from: %s\n", *configFile)
	}
	if *mountPoint != "" {
		installConfig.MountPoint = *mountPoint
	}
	if err := config.Validate(installConfig); err != nil {
		return installConfig, err
	}
	return installConfig, nil
}

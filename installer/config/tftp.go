package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pin/tftp"

	"github.com/Cloud-Foundations/metal-installer/lib/constants"
	"github.com/Cloud-Foundations/metal-installer/lib/fsutil"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
)

func fetchFromTftp(hostname, directory string,
	logger log.DebugLogger) (string, error) {
	return fetchFromTftpAddress(hostname+":69", directory, logger)
}

func fetchFromTftpAddress(address, directory string,
	logger log.DebugLogger) (string, error) {
	client, err := tftp.NewClient(address)
	if err != nil {
		return "", err
	}
	name := constants.TftpConfigFilename
	logger.Debugf(1, "downloading: %s from: %s\n", name, address)
	wt, err := client.Receive(name, "octet")
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			logger.Debugf(0, "no %s on TFTP server: %s\n", name, address)
			return "", nil
		}
		return "", fmt.Errorf("error receiving: %s: %s", name, err)
	}
	if err := os.MkdirAll(directory, fsutil.DirPerms); err != nil {
		return "", err
	}
	filename := filepath.Join(directory, name)
	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()
	if _, err := wt.WriteTo(file); err != nil {
		return "", fmt.Errorf("error downloading: %s: %s", name, err)
	}
	logger.Debugf(1, "downloaded: %s\n", filename)
	return filename, file.Close()
}

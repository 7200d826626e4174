package config

import (
	"fmt"

	"github.com/Cloud-Foundations/metal-installer/lib/constants"
	"github.com/Cloud-Foundations/metal-installer/lib/json"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

func cloneConfig(config proto.InstallConfig) proto.InstallConfig {
	config.Packages = cloneStrings(config.Packages)
	config.Services = cloneStrings(config.Services)
	config.UserGroups = cloneStrings(config.UserGroups)
	return config
}

func cloneStrings(input []string) []string {
	if input == nil {
		return nil
	}
	output := make([]string, len(input))
	copy(output, input)
	return output
}

func defaultConfig() proto.InstallConfig {
	return proto.InstallConfig{
		Device:       "/dev/nvme0n1",
		EfiSize:      "500MiB",
		Hostname:     "void",
		Timezone:     "UTC",
		Locale:       "en_US.UTF-8",
		Keymap:       "us",
		Architecture: "x86_64",
		Repository:   "https://repo-default.voidlinux.org/current",
		Packages: []string{
			"chrony",
			"efibootmgr",
			"grub-x86_64-efi",
			"openssh",
			"sudo",
			"vim",
		},
		Username:           "void",
		RootPassword:       "voidlinux",
		UserPassword:       "voidlinux",
		MountPoint:         constants.DefaultMountPoint,
		UserGroups:         []string{"wheel", "audio", "video", "storage"},
		UserShell:          "/bin/bash",
		BootloaderId:       "Void",
		ZramSize:           "4GiB",
		Services:           []string{"chronyd", "dhcpcd", "sshd"},
		SettleDelaySeconds: 2,
		ConnectivityHost:   "repo-default.voidlinux.org",
	}
}

func load(base proto.InstallConfig, filename string) (
	proto.InstallConfig, error) {
	config := cloneConfig(base)
	if err := json.ReadStrictFromFile(filename, &config); err != nil {
		return proto.InstallConfig{},
			fmt.Errorf("error reading configuration: %s: %s", filename, err)
	}
	return config, nil
}

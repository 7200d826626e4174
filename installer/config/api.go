package config

import (
	"github.com/Cloud-Foundations/metal-installer/lib/log"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

// Clone returns a deep copy of config, so that the copy may be decoded into
// without aliasing the slices of the original.
func Clone(config proto.InstallConfig) proto.InstallConfig {
	return cloneConfig(config)
}

// Default returns the compiled-in installation configuration. Each call
// returns a new value.
func Default() proto.InstallConfig {
	return defaultConfig()
}

// EfiSizeMiB returns the size of the EFI system partition in MiB.
func EfiSizeMiB(config proto.InstallConfig) (uint64, error) {
	return efiSizeMiB(config.EfiSize)
}

// FetchFromTftp will download the configuration override file (install.json)
// from the TFTP server hostname and write it into directory. The pathname of
// the downloaded file is returned. If the server does not have the file, an
// empty pathname and no error are returned.
func FetchFromTftp(hostname, directory string,
	logger log.DebugLogger) (string, error) {
	return fetchFromTftp(hostname, directory, logger)
}

// Load returns base overlaid with the values in the JSON file filename.
// Fields which are absent from the file keep their base value and unknown
// fields are an error. Comment lines are permitted.
func Load(base proto.InstallConfig, filename string) (
	proto.InstallConfig, error) {
	return load(base, filename)
}

// ParseSize parses a byte size such as "500MiB", "512M" or "4GiB". Binary
// multipliers are used for all suffixes.
func ParseSize(size string) (uint64, error) {
	return parseSize(size)
}

// Validate checks config for problems which would stop an installation
// before it touches the disk. All problems found are returned, joined.
func Validate(config proto.InstallConfig) error {
	return validate(config)
}

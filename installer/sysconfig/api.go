package sysconfig

import (
	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/installer/mount"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

type Params struct {
	Logger log.DebugLogger
	Runner command.Runner
}

// Apply writes the system configuration into session.RootDir: hostname,
// hosts, locale, timezone, keymap, dracut, zram swap, fstab and enabled
// runit services. Nothing is written under /home, which is populated once
// the user exists. Every write only changes a file if its content differs,
// so Apply may be repeated.
func Apply(config proto.InstallConfig, identity proto.FilesystemIdentity,
	session *mount.Session, params Params) error {
	return apply(config, identity, session, params)
}

// HostsFile returns the content of /etc/hosts for hostname.
func HostsFile(hostname string) []byte {
	return hostsFile(hostname)
}

// LocaleLine returns the /etc/default/libc-locales line which enables locale.
func LocaleLine(locale string) string {
	return localeLine(locale)
}

// TargetPath returns the host path for path inside rootDir. Symbolic links
// in the directory part are resolved within rootDir, the final component is
// not resolved.
func TargetPath(rootDir, path string) (string, error) {
	return targetPath(rootDir, path)
}

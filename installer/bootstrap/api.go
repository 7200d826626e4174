package bootstrap

import (
	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/installer/mount"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

type Params struct {
	KeysDirectory string // Default: /var/db/xbps/keys.
	Logger        log.DebugLogger
	Runner        command.Runner
}

// Bootstrap copies the host package signing keys into the target (a failure
// is only logged), installs base-system into session.RootDir and then
// updates xbps followed by everything else.
func Bootstrap(config proto.InstallConfig, session *mount.Session,
	params Params) error {
	return bootstrap(config, session, params)
}

// InstallPackages installs config.Packages into session.RootDir with a
// single xbps-install call. An empty package list does nothing.
func InstallPackages(config proto.InstallConfig, session *mount.Session,
	params Params) error {
	return installPackages(config, session, params)
}

// XbpsInstall returns the xbps-install command which operates on rootDir
// using the configured architecture and repository. Extra arguments follow
// the common ones.
func XbpsInstall(config proto.InstallConfig, rootDir string,
	args ...string) command.Command {
	return xbpsInstall(config, rootDir, args...)
}

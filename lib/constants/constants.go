package constants

const (
	InstallerPortNumber = 6978

	DefaultMountPoint  = "/mnt"
	LogDirectory       = "/var/log/installer"
	SysfsDirectory     = "/sys"
	TftpConfigFilename = "install.json"
	TftpDirectory      = "/var/lib/metal-installer/tftpdata"
	XbpsKeysDirectory  = "/var/db/xbps/keys"
	ResolvConfFile     = "/etc/resolv.conf"

	RunitServiceDirectory = "/etc/sv"
	RunitEnabledDirectory = "/etc/runit/runsvdir/default"
)

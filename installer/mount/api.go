package mount

import (
	"github.com/Cloud-Foundations/metal-installer/lib/fsutil/mounts"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

// Mounter attaches and detaches file-systems.
type Mounter interface {
	Mount(source, target, fsType string) error
	Unmount(target string) error
}

type Params struct {
	Logger        log.DebugLogger
	Mounter       Mounter                            // Default: system calls.
	GetMountTable func() (*mounts.MountTable, error) // Default: /proc/mounts.
}

// Session records where the target file-systems are mounted. Only Cleanup
// unmounts them.
type Session struct {
	RootDir string
	BootDir string
	params  Params
}

// Mount mounts the root partition on config.MountPoint, creates the boot
// directory inside it and mounts the EFI partition there, in that order.
// Both UUIDs in identity must be known, else an
// *errors.FailedPreconditionError is returned and nothing is mounted.
func Mount(config proto.InstallConfig, layout proto.PartitionLayout,
	identity proto.FilesystemIdentity, params Params) (*Session, error) {
	return mount(config, layout, identity, params)
}

// NewMounter returns a Mounter which uses the mount(2) and umount(2) system
// calls.
func NewMounter(logger log.DebugLogger) Mounter {
	return &unixMounter{logger}
}

// Cleanup unmounts everything mounted under BootDir and then everything
// under RootDir, deepest first. Failures are logged and otherwise ignored.
// It returns the number of file-systems unmounted.
func (s *Session) Cleanup() int {
	return s.cleanup()
}

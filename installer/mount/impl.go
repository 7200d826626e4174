package mount

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/Cloud-Foundations/metal-installer/lib/errors"
	"github.com/Cloud-Foundations/metal-installer/lib/fsutil"
	"github.com/Cloud-Foundations/metal-installer/lib/fsutil/mounts"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

type unixMounter struct {
	logger log.DebugLogger
}

func mount(config proto.InstallConfig, layout proto.PartitionLayout,
	identity proto.FilesystemIdentity, params Params) (*Session, error) {
	if identity.RootUuid == "" {
		return nil, errors.NewFailedPreconditionError("root file-system UUID",
			"empty", "refusing to mount")
	}
	if identity.EfiUuid == "" {
		return nil, errors.NewFailedPreconditionError("EFI file-system UUID",
			"empty", "refusing to mount")
	}
	params.prepare()
	session := &Session{
		RootDir: filepath.Clean(config.MountPoint),
		BootDir: filepath.Join(config.MountPoint, "boot"),
		params:  params,
	}
	if err := os.MkdirAll(session.RootDir, fsutil.DirPerms); err != nil {
		return nil, err
	}
	err := params.Mounter.Mount(layout.Root.Path, session.RootDir,
		layout.Root.FileSystemType.String())
	if err != nil {
		return nil, err
	}
	params.Logger.Printf("mounted: %s on: %s\n",
		layout.Root.Path, session.RootDir)
	if err := os.MkdirAll(session.BootDir, fsutil.DirPerms); err != nil {
		return session, err
	}
	err = params.Mounter.Mount(layout.Efi.Path, session.BootDir,
		layout.Efi.FileSystemType.String())
	if err != nil {
		return session, err
	}
	params.Logger.Printf("mounted: %s on: %s\n",
		layout.Efi.Path, session.BootDir)
	return session, nil
}

func (p *Params) prepare() {
	if p.Mounter == nil {
		p.Mounter = NewMounter(p.Logger)
	}
	if p.GetMountTable == nil {
		p.GetMountTable = mounts.GetMountTable
	}
}

func (s *Session) cleanup() int {
	unix.Sync()
	return s.unmountTree(s.BootDir) + s.unmountTree(s.RootDir)
}

func (s *Session) unmountTree(path string) int {
	logger := s.params.Logger
	mountPoints := []string{path}
	if mountTable, err := s.params.GetMountTable(); err != nil {
		logger.Printf("error reading mount table: %s\n", err)
	} else {
		mountPoints = mountTable.MountPointsUnder(path)
	}
	var numUnmounted int
	for _, mountPoint := range mountPoints {
		if err := s.params.Mounter.Unmount(mountPoint); err != nil {
			logger.Printf("error unmounting: %s: %s\n", mountPoint, err)
		} else {
			logger.Debugf(0, "unmounted: %s\n", mountPoint)
			numUnmounted++
		}
	}
	return numUnmounted
}

func (m *unixMounter) Mount(source, target, fsType string) error {
	m.logger.Debugf(0, "mount -t %s %s %s\n", fsType, source, target)
	if err := unix.Mount(source, target, fsType, 0, ""); err != nil {
		return &os.PathError{Op: "mount " + source, Path: target, Err: err}
	}
	return nil
}

func (m *unixMounter) Unmount(target string) error {
	if err := unix.Unmount(target, 0); err != nil {
		return &os.PathError{Op: "unmount", Path: target, Err: err}
	}
	return nil
}

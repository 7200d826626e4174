package sysconfig

import (
	"bytes"
	"os"
	"path"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/lib/constants"
	"github.com/Cloud-Foundations/metal-installer/lib/errors"
	"github.com/Cloud-Foundations/metal-installer/lib/fsutil"
)

const fstabGenerator = "xgenfstab"

// ensureFstabGenerator installs xtools (which provides xgenfstab) on the host
// if it is missing.
func (w *writer) ensureFstabGenerator() error {
	if _, err := w.params.Runner.LookPath(fstabGenerator); err == nil {
		return nil
	}
	w.params.Logger.Printf("%s missing, installing xtools on the host\n",
		fstabGenerator)
	return w.params.Runner.Run(command.Command{
		Name: "xbps-install",
		Args: []string{"-S", "-y", "xtools"},
	})
}

func (w *writer) writeFstab() error {
	if err := w.ensureFstabGenerator(); err != nil {
		return err
	}
	output, err := w.params.Runner.Output(command.Command{
		Name: fstabGenerator,
		Args: []string{"-U", w.rootDir},
	})
	if err != nil {
		return err
	}
	lines, err := fsutil.ReadLines(bytes.NewReader(output))
	if err != nil {
		return err
	}
	sources := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		sources[strings.Fields(line)[0]] = struct{}{}
	}
	for _, uuid := range []string{w.identity.RootUuid, w.identity.EfiUuid} {
		if _, ok := sources["UUID="+uuid]; uuid == "" || !ok {
			return errors.NewFailedPreconditionError("generated fstab",
				"incomplete", "no entry for UUID="+uuid)
		}
	}
	return w.updateFile("/etc/fstab", output, fsutil.PublicFilePerms)
}

func (w *writer) enableServices() error {
	if len(w.config.Services) < 1 {
		return nil
	}
	for _, service := range w.config.Services {
		serviceDir := path.Join(constants.RunitServiceDirectory, service)
		hostDir, err := securejoin.SecureJoin(w.rootDir, serviceDir)
		if err != nil {
			return err
		}
		if fi, err := os.Stat(hostDir); err != nil || !fi.IsDir() {
			return errors.NewFailedPreconditionError("runit service "+service,
				"missing", serviceDir+" not installed in target")
		}
		linkname, err := w.path(
			path.Join(constants.RunitEnabledDirectory, service))
		if err != nil {
			return err
		}
		changed, err := fsutil.EnsureSymlink(serviceDir, linkname)
		if err != nil {
			return err
		}
		if changed {
			w.params.Logger.Printf("enabled service: %s\n", service)
		}
	}
	return nil
}

package sysconfig

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/Cloud-Foundations/metal-installer/installer/config"
	"github.com/Cloud-Foundations/metal-installer/installer/mount"
	"github.com/Cloud-Foundations/metal-installer/lib/errors"
	"github.com/Cloud-Foundations/metal-installer/lib/fsutil"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

const zramMarker = "metal-installer zram swap"

type writer struct {
	config   proto.InstallConfig
	identity proto.FilesystemIdentity
	params   Params
	rootDir  string
}

func apply(config proto.InstallConfig, identity proto.FilesystemIdentity,
	session *mount.Session, params Params) error {
	w := &writer{
		config:   config,
		identity: identity,
		params:   params,
		rootDir:  session.RootDir,
	}
	steps := []struct {
		name string
		fn   func() error
	}{
		{"hostname", w.writeHostname},
		{"hosts", w.writeHosts},
		{"locale", w.writeLocale},
		{"timezone", w.writeTimezone},
		{"keymap", w.writeKeymap},
		{"dracut", w.writeDracut},
		{"zram swap", w.writeZram},
		{"fstab", w.writeFstab},
		{"services", w.enableServices},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("error configuring %s: %w", step.name, err)
		}
	}
	return nil
}

func hostsFile(hostname string) []byte {
	buffer := &bytes.Buffer{}
	fmt.Fprintln(buffer, "127.0.0.1\tlocalhost")
	fmt.Fprintln(buffer, "::1\t\tlocalhost")
	fmt.Fprintf(buffer, "127.0.1.1\t%s.localdomain %s\n", hostname, hostname)
	return buffer.Bytes()
}

func isMusl(architecture string) bool {
	return strings.HasSuffix(architecture, "-musl")
}

func localeLine(locale string) string {
	charset := "ISO-8859-1"
	if index := strings.IndexByte(locale, '.'); index >= 0 {
		charset = locale[index+1:]
		if index := strings.IndexByte(charset, '@'); index >= 0 {
			charset = charset[:index]
		}
	}
	return locale + " " + charset
}

func targetPath(rootDir, pathname string) (string, error) {
	dirname, err := securejoin.SecureJoin(rootDir, path.Dir(pathname))
	if err != nil {
		return "", err
	}
	return filepath.Join(dirname, path.Base(pathname)), nil
}

// path returns the host path of pathname in the target and makes sure the
// parent directory exists.
func (w *writer) path(pathname string) (string, error) {
	filename, err := targetPath(w.rootDir, pathname)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(filename), fsutil.DirPerms); err != nil {
		return "", err
	}
	return filename, nil
}

func (w *writer) logChange(pathname string, changed bool) {
	if changed {
		w.params.Logger.Printf("wrote: %s\n", pathname)
	} else {
		w.params.Logger.Debugf(1, "unchanged: %s\n", pathname)
	}
}

func (w *writer) updateFile(pathname string, data []byte,
	perm os.FileMode) error {
	filename, err := w.path(pathname)
	if err != nil {
		return err
	}
	changed, err := fsutil.UpdateFile(data, filename, perm)
	if err != nil {
		return err
	}
	w.logChange(pathname, changed)
	return nil
}

func (w *writer) writeHostname() error {
	return w.updateFile("/etc/hostname", []byte(w.config.Hostname+"\n"),
		fsutil.PublicFilePerms)
}

func (w *writer) writeHosts() error {
	return w.updateFile("/etc/hosts", hostsFile(w.config.Hostname),
		fsutil.PublicFilePerms)
}

func (w *writer) writeLocale() error {
	filename, err := w.path("/etc/locale.conf")
	if err != nil {
		return err
	}
	changed, err := fsutil.SetVariable(filename, "LANG", w.config.Locale,
		fsutil.PublicFilePerms)
	if err != nil {
		return err
	}
	w.logChange("/etc/locale.conf", changed)
	if isMusl(w.config.Architecture) {
		return nil
	}
	if filename, err = w.path("/etc/default/libc-locales"); err != nil {
		return err
	}
	changed, err = fsutil.EnsureLine(filename, localeLine(w.config.Locale),
		fsutil.PublicFilePerms)
	if err != nil {
		return err
	}
	w.logChange("/etc/default/libc-locales", changed)
	return nil
}

func (w *writer) writeTimezone() error {
	zonePath := path.Join("/usr/share/zoneinfo", w.config.Timezone)
	zoneFile, err := securejoin.SecureJoin(w.rootDir, zonePath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(zoneFile); err != nil {
		return errors.NewFailedPreconditionError("timezone "+w.config.Timezone,
			"missing", err.Error())
	}
	linkname, err := w.path("/etc/localtime")
	if err != nil {
		return err
	}
	changed, err := fsutil.EnsureSymlink(zonePath, linkname)
	if err != nil {
		return err
	}
	w.logChange("/etc/localtime", changed)
	return nil
}

func (w *writer) writeKeymap() error {
	filename, err := w.path("/etc/rc.conf")
	if err != nil {
		return err
	}
	changed, err := fsutil.SetVariable(filename, "KEYMAP",
		`"`+w.config.Keymap+`"`, fsutil.PublicFilePerms)
	if err != nil {
		return err
	}
	w.logChange("/etc/rc.conf", changed)
	return nil
}

func (w *writer) writeDracut() error {
	return w.updateFile("/etc/dracut.conf.d/hostonly.conf",
		[]byte("hostonly=\"yes\"\n"), fsutil.PublicFilePerms)
}

func (w *writer) writeZram() error {
	if w.config.ZramSize == "" {
		return nil
	}
	size, err := config.ParseSize(w.config.ZramSize)
	if err != nil {
		return err
	}
	filename, err := w.path("/etc/rc.local")
	if err != nil {
		return err
	}
	block := strings.Join([]string{
		"modprobe zram",
		"echo zstd > /sys/block/zram0/comp_algorithm",
		fmt.Sprintf("echo %d > /sys/block/zram0/disksize", size),
		"mkswap /dev/zram0",
		"swapon -p 100 /dev/zram0",
	}, "\n")
	changed, err := fsutil.UpdateBlock(filename, zramMarker, block,
		fsutil.ExecutableFilePerms)
	if err != nil {
		return err
	}
	w.logChange("/etc/rc.local", changed)
	return nil
}


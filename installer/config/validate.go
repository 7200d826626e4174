package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/crypto/ssh"

	installerErrors "github.com/Cloud-Foundations/metal-installer/lib/errors"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

var (
	hostnameRegexp = regexp.MustCompile(
		`^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?$`)
	nameRegexp = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)

	supportedArchitectures = map[string]struct{}{
		"aarch64":      {},
		"aarch64-musl": {},
		"i686":         {},
		"x86_64":       {},
		"x86_64-musl":  {},
	}
)

type validator struct {
	errs []error
}

func (v *validator) check(argument string, ok bool, format string,
	args ...interface{}) {
	if !ok {
		v.errs = append(v.errs, installerErrors.NewInvalidArgumentError(
			argument, fmt.Sprintf(format, args...)))
	}
}

func (v *validator) checkError(argument string, err error) {
	if err != nil {
		v.errs = append(v.errs,
			installerErrors.NewInvalidArgumentError(argument, err.Error()))
	}
}

func (v *validator) checkNames(argument string, names []string,
	pattern *regexp.Regexp) {
	for _, name := range names {
		if pattern == nil {
			v.check(argument, name != "" && name[0] != '-' &&
				!strings.ContainsAny(name, "/ \t"),
				"bad name: %q", name)
		} else {
			v.check(argument, pattern.MatchString(name),
				"bad name: %q", name)
		}
	}
	if duplicates := lo.FindDuplicates(names); len(duplicates) > 0 {
		v.check(argument, false, "duplicate entries: %s",
			strings.Join(duplicates, ", "))
	}
}

func checkRepository(repository string) error {
	if repository == "" {
		return errors.New("empty")
	}
	u, err := url.Parse(repository)
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "file", "http", "https":
		return nil
	}
	return fmt.Errorf("unsupported scheme: %q", u.Scheme)
}

func checkTimezone(timezone string) bool {
	if timezone == "" || filepath.IsAbs(timezone) {
		return false
	}
	return filepath.Clean(timezone) == timezone &&
		!strings.HasPrefix(timezone, "..")
}

func validate(config proto.InstallConfig) error {
	v := &validator{}
	v.check("Device", strings.HasPrefix(config.Device, "/dev/") &&
		len(config.Device) > len("/dev/"), "must be a /dev path: %q",
		config.Device)
	if _, err := efiSizeMiB(config.EfiSize); err != nil {
		v.checkError("EfiSize", err)
	}
	if config.ZramSize != "" {
		if size, err := parseSize(config.ZramSize); err != nil {
			v.checkError("ZramSize", err)
		} else {
			v.check("ZramSize", size > 0, "must be greater than zero")
		}
	}
	v.check("Hostname", hostnameRegexp.MatchString(config.Hostname),
		"not a valid hostname: %q", config.Hostname)
	v.check("Timezone", checkTimezone(config.Timezone),
		"not a zoneinfo name: %q", config.Timezone)
	v.check("Locale", config.Locale != "" &&
		!strings.ContainsAny(config.Locale, " \t\n/"),
		"not a locale name: %q", config.Locale)
	v.check("Keymap", config.Keymap != "" &&
		!strings.ContainsAny(config.Keymap, " \t\n\"/"),
		"not a keymap name: %q", config.Keymap)
	_, ok := supportedArchitectures[config.Architecture]
	v.check("Architecture", ok, "unsupported: %q", config.Architecture)
	v.checkError("Repository", checkRepository(config.Repository))
	v.checkNames("Packages", config.Packages, nil)
	v.check("Username", nameRegexp.MatchString(config.Username) &&
		config.Username != "root", "not a valid login name: %q",
		config.Username)
	v.check("RootPassword", config.RootPassword != "" &&
		!strings.ContainsAny(config.RootPassword, "\n\r"),
		"must be a single non-empty line")
	v.check("UserPassword", config.UserPassword != "" &&
		!strings.ContainsAny(config.UserPassword, "\n\r"),
		"must be a single non-empty line")
	v.check("MountPoint", filepath.IsAbs(config.MountPoint) &&
		filepath.Clean(config.MountPoint) != "/",
		"must be an absolute path other than /: %q", config.MountPoint)
	v.checkNames("UserGroups", config.UserGroups, nameRegexp)
	v.check("UserShell", filepath.IsAbs(config.UserShell),
		"must be an absolute path: %q", config.UserShell)
	v.check("BootloaderId", config.BootloaderId != "" &&
		!strings.ContainsAny(config.BootloaderId, " \t\n/"),
		"not a valid identifier: %q", config.BootloaderId)
	v.checkNames("Services", config.Services, nil)
	if config.AuthorizedKey != "" {
		_, _, _, _, err := ssh.ParseAuthorizedKey([]byte(config.AuthorizedKey))
		v.checkError("AuthorizedKey", err)
	}
	v.check("ConnectivityHost", config.ConnectivityHost != "",
		"must not be empty")
	return errors.Join(v.errs...)
}

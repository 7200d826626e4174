package sysconfig

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/installer/command/testrunner"
	"github.com/Cloud-Foundations/metal-installer/installer/config"
	"github.com/Cloud-Foundations/metal-installer/installer/mount"
	"github.com/Cloud-Foundations/metal-installer/lib/errors"
	"github.com/Cloud-Foundations/metal-installer/lib/log/testlogger"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

const testKey = "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIOMqqnkVzrm0SdG6UOoqKLsabgH5C9okWi0dh2l9GKJl operator@example"

var testIdentity = proto.FilesystemIdentity{
	EfiUuid:  "ABCD-1234",
	RootUuid: "0f3c9a2e-7d41-4c55-9a0b-3f1e2d4c5b6a",
}

func writeFile(t *testing.T, filename, content string, perm os.FileMode) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filename, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
}

func makeTarget(t *testing.T) string {
	rootDir := t.TempDir()
	writeFile(t, filepath.Join(rootDir, "usr/share/zoneinfo/Europe/Berlin"),
		"TZif2", 0644)
	writeFile(t, filepath.Join(rootDir, "etc/rc.local"),
		"#!/bin/sh\n# Default rc.local for void\n", 0644)
	writeFile(t, filepath.Join(rootDir, "etc/rc.conf"),
		"# /etc/rc.conf\n#KEYMAP=\"es\"\n", 0644)
	writeFile(t, filepath.Join(rootDir, "etc/default/libc-locales"),
		"#en_US.UTF-8 UTF-8\n", 0644)
	for _, service := range []string{"chronyd", "dhcpcd", "sshd"} {
		err := os.MkdirAll(filepath.Join(rootDir, "etc/sv", service), 0755)
		if err != nil {
			t.Fatal(err)
		}
	}
	return rootDir
}

func fstabHandler(identity proto.FilesystemIdentity) testrunner.HandlerFunc {
	return func(cmd command.Command) ([]byte, error) {
		return []byte("UUID=" + identity.RootUuid + " / ext4 defaults 0 1\n" +
			"UUID=" + identity.EfiUuid + " /boot vfat defaults 0 2\n" +
			"tmpfs /tmp tmpfs defaults,nosuid,nodev 0 0\n"), nil
	}
}

func testConfig() proto.InstallConfig {
	installConfig := config.Default()
	installConfig.Hostname = "lab01"
	installConfig.Timezone = "Europe/Berlin"
	installConfig.Keymap = "de"
	installConfig.AuthorizedKey = testKey
	return installConfig
}

func snapshot(t *testing.T, rootDir string) map[string]string {
	files := make(map[string]string)
	err := filepath.Walk(rootDir,
		func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.Mode()&os.ModeSymlink != 0 {
				target, err := os.Readlink(path)
				if err != nil {
					return err
				}
				files[path] = "-> " + target
			} else if fi.Mode().IsRegular() {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				files[path] = fi.Mode().String() + " " + string(data)
			}
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}
	return files
}

func readFile(t *testing.T, filename string) string {
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestApply(t *testing.T) {
	rootDir := makeTarget(t)
	runner := testrunner.New()
	runner.Handle("xgenfstab", fstabHandler(testIdentity))
	params := Params{Logger: testlogger.New(t), Runner: runner}
	session := &mount.Session{RootDir: rootDir}
	if err := Apply(testConfig(), testIdentity, session, params); err != nil {
		t.Fatal(err)
	}
	if text := readFile(t, filepath.Join(rootDir, "etc/hostname")); text !=
		"lab01\n" {
		t.Errorf("bad hostname file: %q", text)
	}
	hosts := readFile(t, filepath.Join(rootDir, "etc/hosts"))
	if !strings.Contains(hosts, "127.0.1.1\tlab01.localdomain lab01\n") {
		t.Errorf("bad hosts file: %q", hosts)
	}
	if text := readFile(t, filepath.Join(rootDir, "etc/locale.conf")); text !=
		"LANG=en_US.UTF-8\n" {
		t.Errorf("bad locale.conf: %q", text)
	}
	locales := readFile(t, filepath.Join(rootDir, "etc/default/libc-locales"))
	if locales != "#en_US.UTF-8 UTF-8\nen_US.UTF-8 UTF-8\n" {
		t.Errorf("bad libc-locales: %q", locales)
	}
	target, err := os.Readlink(filepath.Join(rootDir, "etc/localtime"))
	if err != nil {
		t.Fatal(err)
	}
	if target != "/usr/share/zoneinfo/Europe/Berlin" {
		t.Errorf("bad localtime link: %s", target)
	}
	if text := readFile(t, filepath.Join(rootDir, "etc/rc.conf")); text !=
		"# /etc/rc.conf\n#KEYMAP=\"es\"\nKEYMAP=\"de\"\n" {
		t.Errorf("bad rc.conf: %q", text)
	}
	if text := readFile(t,
		filepath.Join(rootDir, "etc/dracut.conf.d/hostonly.conf")); text !=
		"hostonly=\"yes\"\n" {
		t.Errorf("bad dracut config: %q", text)
	}
	rcLocal := filepath.Join(rootDir, "etc/rc.local")
	if fi, err := os.Stat(rcLocal); err != nil {
		t.Fatal(err)
	} else if fi.Mode().Perm()&0111 == 0 {
		t.Errorf("rc.local not executable: %s", fi.Mode())
	}
	if text := readFile(t, rcLocal); !strings.Contains(text,
		"echo 4294967296 > /sys/block/zram0/disksize\n") ||
		!strings.HasPrefix(text, "#!/bin/sh\n") {
		t.Errorf("bad rc.local: %q", text)
	}
	fstab := readFile(t, filepath.Join(rootDir, "etc/fstab"))
	if !strings.Contains(fstab, "UUID="+testIdentity.RootUuid) ||
		!strings.Contains(fstab, "UUID="+testIdentity.EfiUuid) {
		t.Errorf("fstab missing UUIDs: %q", fstab)
	}
	for _, service := range []string{"chronyd", "dhcpcd", "sshd"} {
		target, err := os.Readlink(
			filepath.Join(rootDir, "etc/runit/runsvdir/default", service))
		if err != nil {
			t.Error(err)
		} else if target != "/etc/sv/"+service {
			t.Errorf("bad service link: %s", target)
		}
	}
	// The home directory belongs to useradd, which only populates and
	// chowns it if it does not exist yet.
	if _, err := os.Lstat(filepath.Join(rootDir, "home")); err == nil {
		t.Error("home created before the user exists")
	} else if !os.IsNotExist(err) {
		t.Fatal(err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	rootDir := makeTarget(t)
	runner := testrunner.New()
	runner.Handle("xgenfstab", fstabHandler(testIdentity))
	params := Params{Logger: testlogger.New(t), Runner: runner}
	session := &mount.Session{RootDir: rootDir}
	if err := Apply(testConfig(), testIdentity, session, params); err != nil {
		t.Fatal(err)
	}
	first := snapshot(t, rootDir)
	if err := Apply(testConfig(), testIdentity, session, params); err != nil {
		t.Fatal(err)
	}
	second := snapshot(t, rootDir)
	if len(first) != len(second) {
		t.Fatalf("file count changed: %d -> %d", len(first), len(second))
	}
	for path, content := range first {
		if second[path] != content {
			t.Errorf("%s changed on second run: %q -> %q",
				path, content, second[path])
		}
	}
}

func TestFstabGeneratorInstalled(t *testing.T) {
	rootDir := makeTarget(t)
	runner := testrunner.New()
	runner.Missing("xgenfstab")
	runner.Handle("xgenfstab", fstabHandler(testIdentity))
	params := Params{Logger: testlogger.New(t), Runner: runner}
	err := Apply(testConfig(), testIdentity, &mount.Session{RootDir: rootDir},
		params)
	if err != nil {
		t.Fatal(err)
	}
	events := runner.Events()
	if len(events) != 2 || events[0] != "xbps-install -S -y xtools" ||
		events[1] != "xgenfstab -U "+rootDir {
		t.Errorf("unexpected commands: %v", events)
	}
}

func TestFstabGeneratorInstallFails(t *testing.T) {
	runner := testrunner.New()
	runner.Missing("xgenfstab")
	runner.Fail("xbps-install", stderrors.New("exit status 1"))
	params := Params{Logger: testlogger.New(t), Runner: runner}
	err := Apply(testConfig(), testIdentity,
		&mount.Session{RootDir: makeTarget(t)}, params)
	if err == nil {
		t.Fatal("no error when xtools could not be installed")
	}
	for _, name := range runner.Names() {
		if name == "xgenfstab" {
			t.Error("xgenfstab ran after install failure")
		}
	}
}

func TestFstabMissingUuid(t *testing.T) {
	rootDir := makeTarget(t)
	runner := testrunner.New()
	runner.Handle("xgenfstab", fstabHandler(proto.FilesystemIdentity{
		EfiUuid:  "FFFF-0000",
		RootUuid: testIdentity.RootUuid,
	}))
	params := Params{Logger: testlogger.New(t), Runner: runner}
	err := Apply(testConfig(), testIdentity, &mount.Session{RootDir: rootDir},
		params)
	var failedPrecondition *errors.FailedPreconditionError
	if !stderrors.As(err, &failedPrecondition) {
		t.Fatalf("expected FailedPreconditionError, got: %v", err)
	}
	if _, err := os.Stat(filepath.Join(rootDir, "etc/fstab")); err == nil {
		t.Error("incomplete fstab written")
	}
}

func TestFstabCommentedUuid(t *testing.T) {
	rootDir := makeTarget(t)
	runner := testrunner.New()
	runner.Handle("xgenfstab", func(command.Command) ([]byte, error) {
		return []byte("# UUID=" + testIdentity.RootUuid + " / ext4\n" +
			"UUID=" + testIdentity.EfiUuid + " /boot vfat defaults 0 2\n"),
			nil
	})
	params := Params{Logger: testlogger.New(t), Runner: runner}
	err := Apply(testConfig(), testIdentity, &mount.Session{RootDir: rootDir},
		params)
	var failedPrecondition *errors.FailedPreconditionError
	if !stderrors.As(err, &failedPrecondition) {
		t.Fatalf("expected FailedPreconditionError, got: %v", err)
	}
}

func TestMissingTimezone(t *testing.T) {
	installConfig := testConfig()
	installConfig.Timezone = "Mars/Olympus_Mons"
	runner := testrunner.New()
	params := Params{Logger: testlogger.New(t), Runner: runner}
	err := Apply(installConfig, testIdentity,
		&mount.Session{RootDir: makeTarget(t)}, params)
	var failedPrecondition *errors.FailedPreconditionError
	if !stderrors.As(err, &failedPrecondition) {
		t.Fatalf("expected FailedPreconditionError, got: %v", err)
	}
}

func TestMissingService(t *testing.T) {
	installConfig := testConfig()
	installConfig.Services = []string{"sshd", "nonexistent"}
	runner := testrunner.New()
	runner.Handle("xgenfstab", fstabHandler(testIdentity))
	params := Params{Logger: testlogger.New(t), Runner: runner}
	err := Apply(installConfig, testIdentity,
		&mount.Session{RootDir: makeTarget(t)}, params)
	var failedPrecondition *errors.FailedPreconditionError
	if !stderrors.As(err, &failedPrecondition) {
		t.Fatalf("expected FailedPreconditionError, got: %v", err)
	}
}

func TestLocaleLine(t *testing.T) {
	tests := map[string]string{
		"en_US.UTF-8":      "en_US.UTF-8 UTF-8",
		"de_DE.UTF-8@euro": "de_DE.UTF-8@euro UTF-8",
		"en_US":            "en_US ISO-8859-1",
	}
	for locale, expected := range tests {
		if line := LocaleLine(locale); line != expected {
			t.Errorf("%s: expected: %q got: %q", locale, expected, line)
		}
	}
}

func TestTargetPathStaysInRoot(t *testing.T) {
	rootDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(rootDir, "etc"), 0755); err != nil {
		t.Fatal(err)
	}
	err := os.Symlink("/etc", filepath.Join(rootDir, "etc", "default"))
	if err != nil {
		t.Fatal(err)
	}
	filename, err := TargetPath(rootDir, "/etc/default/libc-locales")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(filename, rootDir+"/") {
		t.Errorf("path escaped root: %s", filename)
	}
}

package phases

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/installer/command/testrunner"
	"github.com/Cloud-Foundations/metal-installer/installer/config"
	"github.com/Cloud-Foundations/metal-installer/installer/mount"
	"github.com/Cloud-Foundations/metal-installer/installer/prompt"
	"github.com/Cloud-Foundations/metal-installer/lib/backoffdelay"
	"github.com/Cloud-Foundations/metal-installer/lib/errors"
	"github.com/Cloud-Foundations/metal-installer/lib/fsutil/mounts"
	"github.com/Cloud-Foundations/metal-installer/lib/log/testlogger"
	"github.com/Cloud-Foundations/metal-installer/lib/retry"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

const (
	efiUuid  = "ABCD-1234"
	rootUuid = "0f3c9a2e-7d41-4c55-9a0b-3f1e2d4c5b6a"
)

type fakeMounter struct {
	mutex   sync.Mutex
	mounted []string
	runner  *testrunner.Runner
}

type fakeProber struct {
	err error
}

type testInstall struct {
	config  proto.InstallConfig
	copied  []string
	mounter *fakeMounter
	output  *bytes.Buffer
	params  Params
	runner  *testrunner.Runner
}

func (m *fakeMounter) getMountTable() (*mounts.MountTable, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	table := &mounts.MountTable{}
	for _, mountPoint := range m.mounted {
		table.Entries = append(table.Entries,
			&mounts.MountEntry{MountPoint: mountPoint})
	}
	return table, nil
}

func (m *fakeMounter) getMounted() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]string(nil), m.mounted...)
}

func (m *fakeMounter) Mount(source, target, fsType string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.runner.Record("mount " + fsType + " " + source + " " + target)
	m.mounted = append(m.mounted, target)
	return nil
}

func (m *fakeMounter) Unmount(target string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.runner.Record("unmount " + target)
	for index, mountPoint := range m.mounted {
		if mountPoint == target {
			m.mounted = append(m.mounted[:index], m.mounted[index+1:]...)
			break
		}
	}
	return nil
}

func (p *fakeProber) Probe(host string) error {
	return p.err
}

func makeDirs(t *testing.T, rootDir string, dirnames ...string) {
	for _, dirname := range dirnames {
		err := os.MkdirAll(filepath.Join(rootDir, dirname), 0755)
		if err != nil {
			t.Fatal(err)
		}
	}
}

// xbpsHandler populates the target the way installing the packages would.
func xbpsHandler(t *testing.T, failPackages bool) testrunner.HandlerFunc {
	return func(cmd command.Command) ([]byte, error) {
		var rootDir string
		for index, arg := range cmd.Args {
			if arg == "-r" && index+1 < len(cmd.Args) {
				rootDir = cmd.Args[index+1]
			}
		}
		switch cmd.Args[len(cmd.Args)-1] {
		case "base-system":
			makeDirs(t, rootDir, "etc/sv/dhcpcd", "usr/share/zoneinfo")
			err := os.WriteFile(
				filepath.Join(rootDir, "usr/share/zoneinfo/UTC"),
				[]byte("TZif2"), 0644)
			if err != nil {
				t.Fatal(err)
			}
		case "vim":
			if failPackages {
				return []byte("ERROR: vim: broken dependency\n"),
					stderrors.New("exit status 19")
			}
			makeDirs(t, rootDir, "etc/sv/chronyd", "etc/sv/sshd")
		}
		return nil, nil
	}
}

func newTestInstall(t *testing.T, probeErr error, answers string,
	failPackages bool) *testInstall {
	sysfs := t.TempDir()
	makeDirs(t, sysfs, "firmware/efi")
	installConfig := config.Default()
	installConfig.Device = "/dev/nvme0n1"
	installConfig.EfiSize = "500MiB"
	installConfig.MountPoint = filepath.Join(t.TempDir(), "target")
	runner := testrunner.New()
	runner.Handle("lsblk", func(command.Command) ([]byte, error) {
		return []byte("NAME    FSTYPE LABEL\nnvme0n1\n"), nil
	})
	runner.Handle("blkid", func(cmd command.Command) ([]byte, error) {
		if strings.HasSuffix(cmd.Args[len(cmd.Args)-1], "p1") {
			return []byte(efiUuid + "\n"), nil
		}
		return []byte(rootUuid + "\n"), nil
	})
	runner.Handle("xbps-install", xbpsHandler(t, failPackages))
	runner.Handle("xgenfstab", func(command.Command) ([]byte, error) {
		return []byte("UUID=" + rootUuid + " / ext4 defaults 0 1\n" +
			"UUID=" + efiUuid + " /boot vfat defaults 0 2\n"), nil
	})
	mounter := &fakeMounter{runner: runner}
	output := &bytes.Buffer{}
	test := &testInstall{
		config:  installConfig,
		mounter: mounter,
		output:  output,
		runner:  runner,
	}
	test.params = Params{
		CopyLogs: func(session *mount.Session) error {
			test.copied = append(test.copied, session.RootDir)
			return nil
		},
		Euid:          func() int { return 0 },
		GetMountTable: mounter.getMountTable,
		KeysDirectory: t.TempDir(),
		Logger:        testlogger.New(t),
		Mounter:       mounter,
		Prober:        &fakeProber{err: probeErr},
		Prompter: prompt.NewConsole(strings.NewReader(answers),
			output),
		Retry: retry.Params{
			MaxRetries: 2,
			Sleeper:    backoffdelay.NewFixed(0),
		},
		Runner:         runner,
		Settler:        backoffdelay.NewFixed(0),
		SummaryWriter:  output,
		SysfsDirectory: sysfs,
		WaitForDevice:  func(string, time.Duration) error { return nil },
	}
	return test
}

// kinds returns the programme name or mount action of each event.
func kinds(events []string) []string {
	var kinds []string
	for _, event := range events {
		fields := strings.Fields(event)
		if strings.HasPrefix(fields[0], "XBPS_ARCH=") {
			fields = fields[1:]
		}
		kinds = append(kinds, fields[0])
	}
	return kinds
}

func checkStates(t *testing.T, results []proto.PhaseResult,
	expected map[proto.Phase]proto.PhaseState) {
	for _, result := range results {
		state, ok := expected[result.Phase]
		if !ok {
			state = proto.PhaseStateNotStarted
		}
		if result.State != state {
			t.Errorf("phase: %s expected: %s got: %s",
				result.Phase, state, result.State)
		}
	}
}

func TestInstall(t *testing.T) {
	test := newTestInstall(t, nil, "YES\n", false)
	result, err := Install(test.config, test.params)
	if err != nil {
		t.Fatal(err)
	}
	rootDir := test.config.MountPoint
	expectedKinds := []string{
		"lsblk", "wipefs", "parted", "partprobe",
		"mkfs.vfat", "mkfs.ext4", "blkid", "blkid",
		"mount", "mount",
		"xbps-install", "xbps-install", "xbps-install", "xbps-install",
		"xgenfstab",
		"xchroot", "xchroot", "xchroot", "xchroot",
		"unmount", "unmount",
	}
	events := test.runner.Events()
	if got := kinds(events); strings.Join(got, " ") !=
		strings.Join(expectedKinds, " ") {
		t.Fatalf("expected: %v got: %v", expectedKinds, events)
	}
	for index, expected := range map[int]string{
		2: "parted -s /dev/nvme0n1 -- mklabel gpt" +
			" mkpart ESP fat32 1MiB 501MiB set 1 esp on" +
			" mkpart root ext4 501MiB 100%",
		8:  "mount ext4 /dev/nvme0n1p2 " + rootDir,
		9:  "mount vfat /dev/nvme0n1p1 " + filepath.Join(rootDir, "boot"),
		19: "unmount " + filepath.Join(rootDir, "boot"),
		20: "unmount " + rootDir,
	} {
		if events[index] != expected {
			t.Errorf("event %d expected: %s got: %s",
				index, expected, events[index])
		}
	}
	if result.Identity.EfiUuid != efiUuid ||
		result.Identity.RootUuid != rootUuid {
		t.Errorf("bad identity: %+v", result.Identity)
	}
	if result.Layout.Efi.SizeBytes != 500<<20 {
		t.Errorf("bad ESP size: %d", result.Layout.Efi.SizeBytes)
	}
	fstab, err := os.ReadFile(filepath.Join(rootDir, "etc/fstab"))
	if err != nil {
		t.Fatal(err)
	}
	for _, uuid := range []string{efiUuid, rootUuid} {
		if !strings.Contains(string(fstab), "UUID="+uuid) {
			t.Errorf("fstab missing: %s: %s", uuid, fstab)
		}
	}
	if len(test.copied) != 1 || test.copied[0] != rootDir {
		t.Errorf("logs not copied once into: %s: %v", rootDir, test.copied)
	}
	if mounted := test.mounter.getMounted(); len(mounted) > 0 {
		t.Errorf("still mounted: %v", mounted)
	}
	if len(result.Results) != proto.NumPhases {
		t.Fatalf("expected %d results, got: %d",
			proto.NumPhases, len(result.Results))
	}
	expectedStates := make(map[proto.Phase]proto.PhaseState)
	for phase := proto.Phase(0); phase < proto.NumPhases; phase++ {
		expectedStates[phase] = proto.PhaseStateSucceeded
	}
	checkStates(t, result.Results, expectedStates)
	output := test.output.String()
	for _, expected := range []string{
		"Installation summary",
		"/dev/nvme0n1p1 (vfat, 500 MiB) UUID=" + efiUuid,
		"/dev/nvme0n1p2 (ext4) UUID=" + rootUuid,
		"  chroot     succeeded",
	} {
		if !strings.Contains(output, expected) {
			t.Errorf("summary missing: %q in:\n%s", expected, output)
		}
	}
	if strings.Contains(output, "voidlinux") {
		t.Errorf("password in summary:\n%s", output)
	}
}

func TestInstallNetworkDeclined(t *testing.T) {
	test := newTestInstall(t, stderrors.New("no default route"), "n\n",
		false)
	_, err := Install(test.config, test.params)
	var phaseErr *PhaseError
	if !stderrors.As(err, &phaseErr) {
		t.Fatalf("expected PhaseError, got: %v", err)
	}
	if phaseErr.Phase != proto.PhasePreflight {
		t.Errorf("failed in phase: %s", phaseErr.Phase)
	}
	var abortedErr *errors.AbortedError
	if !stderrors.As(err, &abortedErr) {
		t.Errorf("expected AbortedError, got: %s", err)
	}
	if events := test.runner.Events(); len(events) > 0 {
		t.Errorf("commands ran: %v", events)
	}
	if strings.Contains(test.output.String(), "YES") {
		t.Errorf("wipe prompt shown: %s", test.output.String())
	}
}

func TestInstallWipeDeclined(t *testing.T) {
	test := newTestInstall(t, nil, "yes\n", false)
	result, err := Install(test.config, test.params)
	var abortedErr *errors.AbortedError
	if !stderrors.As(err, &abortedErr) {
		t.Fatalf("expected AbortedError, got: %v", err)
	}
	if names := test.runner.Names(); len(names) != 1 || names[0] != "lsblk" {
		t.Errorf("disk commands ran: %v", names)
	}
	checkStates(t, result.Results, map[proto.Phase]proto.PhaseState{
		proto.PhasePreflight: proto.PhaseStateSucceeded,
		proto.PhasePartition: proto.PhaseStateFailed,
	})
}

func TestInstallPackagesFailure(t *testing.T) {
	test := newTestInstall(t, nil, "YES\n", true)
	result, err := Install(test.config, test.params)
	var phaseErr *PhaseError
	if !stderrors.As(err, &phaseErr) {
		t.Fatalf("expected PhaseError, got: %v", err)
	}
	if phaseErr.Phase != proto.PhasePackages {
		t.Errorf("failed in phase: %s", phaseErr.Phase)
	}
	var cmdErr *command.Error
	if !stderrors.As(err, &cmdErr) {
		t.Errorf("expected command.Error, got: %s", err)
	}
	if mounted := test.mounter.getMounted(); len(mounted) != 2 {
		t.Errorf("expected target left mounted, got: %v", mounted)
	}
	for _, event := range test.runner.Events() {
		if strings.HasPrefix(event, "unmount") {
			t.Errorf("unexpected: %s", event)
		}
	}
	if len(test.copied) > 0 {
		t.Errorf("logs copied: %v", test.copied)
	}
	if result.Session == nil {
		t.Error("no session for inspection")
	}
	checkStates(t, result.Results, map[proto.Phase]proto.PhaseState{
		proto.PhasePreflight: proto.PhaseStateSucceeded,
		proto.PhasePartition: proto.PhaseStateSucceeded,
		proto.PhaseFormat:    proto.PhaseStateSucceeded,
		proto.PhaseMount:     proto.PhaseStateSucceeded,
		proto.PhaseBootstrap: proto.PhaseStateSucceeded,
		proto.PhasePackages:  proto.PhaseStateFailed,
	})
}

func TestInstallCleanupOnFailure(t *testing.T) {
	test := newTestInstall(t, nil, "YES\n", true)
	test.params.CleanupOnFailure = true
	result, err := Install(test.config, test.params)
	var phaseErr *PhaseError
	if !stderrors.As(err, &phaseErr) || phaseErr.Phase != proto.PhasePackages {
		t.Fatalf("expected packages failure, got: %v", err)
	}
	if mounted := test.mounter.getMounted(); len(mounted) > 0 {
		t.Errorf("still mounted: %v", mounted)
	}
	if len(test.copied) != 1 {
		t.Errorf("logs not copied: %v", test.copied)
	}
	checkStates(t, result.Results, map[proto.Phase]proto.PhaseState{
		proto.PhasePreflight: proto.PhaseStateSucceeded,
		proto.PhasePartition: proto.PhaseStateSucceeded,
		proto.PhaseFormat:    proto.PhaseStateSucceeded,
		proto.PhaseMount:     proto.PhaseStateSucceeded,
		proto.PhaseBootstrap: proto.PhaseStateSucceeded,
		proto.PhasePackages:  proto.PhaseStateFailed,
		proto.PhaseCleanup:   proto.PhaseStateSucceeded,
	})
}

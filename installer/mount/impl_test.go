package mount

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cloud-Foundations/metal-installer/lib/errors"
	"github.com/Cloud-Foundations/metal-installer/lib/fsutil/mounts"
	"github.com/Cloud-Foundations/metal-installer/lib/log/testlogger"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

type fakeMounter struct {
	t          *testing.T
	events     []string
	failUmount map[string]bool
	mounted    []string
}

func (m *fakeMounter) getMountTable() (*mounts.MountTable, error) {
	table := &mounts.MountTable{}
	for _, mountPoint := range m.mounted {
		table.Entries = append(table.Entries,
			&mounts.MountEntry{MountPoint: mountPoint})
	}
	return table, nil
}

func (m *fakeMounter) Mount(source, target, fsType string) error {
	if _, err := os.Stat(target); err != nil {
		m.t.Errorf("mount point missing when mounting %s: %s", source, err)
	}
	m.events = append(m.events,
		fmt.Sprintf("mount %s %s %s", fsType, source, target))
	m.mounted = append(m.mounted, target)
	return nil
}

func (m *fakeMounter) Unmount(target string) error {
	m.events = append(m.events, "unmount "+target)
	if m.failUmount[target] {
		return stderrors.New("device busy")
	}
	for index, mountPoint := range m.mounted {
		if mountPoint == target {
			m.mounted = append(m.mounted[:index], m.mounted[index+1:]...)
			break
		}
	}
	return nil
}

func testLayout() proto.PartitionLayout {
	return proto.PartitionLayout{
		Efi: proto.Partition{
			Path:           "/dev/nvme0n1p1",
			FileSystemType: proto.FileSystemTypeVfat,
			Role:           proto.PartitionRoleEsp,
		},
		Root: proto.Partition{
			Path:           "/dev/nvme0n1p2",
			FileSystemType: proto.FileSystemTypeExt4,
			Role:           proto.PartitionRoleRoot,
		},
	}
}

var testIdentity = proto.FilesystemIdentity{
	EfiUuid:  "ABCD-1234",
	RootUuid: "0f3c9a2e-7d41-4c55-9a0b-3f1e2d4c5b6a",
}

func TestMountOrder(t *testing.T) {
	mountPoint := filepath.Join(t.TempDir(), "target")
	mounter := &fakeMounter{t: t}
	session, err := Mount(proto.InstallConfig{MountPoint: mountPoint},
		testLayout(), testIdentity,
		Params{Logger: testlogger.New(t), Mounter: mounter})
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{
		"mount ext4 /dev/nvme0n1p2 " + mountPoint,
		"mount vfat /dev/nvme0n1p1 " + filepath.Join(mountPoint, "boot"),
	}
	if strings.Join(mounter.events, "\n") != strings.Join(expected, "\n") {
		t.Errorf("expected: %v got: %v", expected, mounter.events)
	}
	if session.RootDir != mountPoint ||
		session.BootDir != filepath.Join(mountPoint, "boot") {
		t.Errorf("unexpected session: %+v", session)
	}
}

func TestMountRequiresUuids(t *testing.T) {
	for _, identity := range []proto.FilesystemIdentity{
		{EfiUuid: "ABCD-1234"},
		{RootUuid: "0f3c9a2e-7d41-4c55-9a0b-3f1e2d4c5b6a"},
		{},
	} {
		mounter := &fakeMounter{t: t}
		_, err := Mount(proto.InstallConfig{MountPoint: t.TempDir()},
			testLayout(), identity,
			Params{Logger: testlogger.New(t), Mounter: mounter})
		var failedPrecondition *errors.FailedPreconditionError
		if !stderrors.As(err, &failedPrecondition) {
			t.Errorf("%+v: expected FailedPreconditionError, got: %v",
				identity, err)
		}
		if len(mounter.events) > 0 {
			t.Errorf("%+v: mounted anyway: %v", identity, mounter.events)
		}
	}
}

func TestCleanup(t *testing.T) {
	mountPoint := filepath.Join(t.TempDir(), "target")
	mounter := &fakeMounter{
		t:          t,
		failUmount: map[string]bool{mountPoint + "/proc": true},
	}
	session, err := Mount(proto.InstallConfig{MountPoint: mountPoint},
		testLayout(), testIdentity,
		Params{
			Logger:        testlogger.New(t),
			Mounter:       mounter,
			GetMountTable: mounter.getMountTable,
		})
	if err != nil {
		t.Fatal(err)
	}
	mounter.mounted = append(mounter.mounted, mountPoint+"/proc",
		mountPoint+"/boot/efi/vars")
	mounter.events = nil
	if numUnmounted := session.Cleanup(); numUnmounted != 3 {
		t.Errorf("expected 3 unmounted, got: %d", numUnmounted)
	}
	expected := []string{
		"unmount " + mountPoint + "/boot/efi/vars",
		"unmount " + mountPoint + "/boot",
		"unmount " + mountPoint + "/proc",
		"unmount " + mountPoint,
	}
	if strings.Join(mounter.events, "\n") != strings.Join(expected, "\n") {
		t.Errorf("expected: %v got: %v", expected, mounter.events)
	}
}

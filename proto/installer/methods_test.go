package installer

import (
	"encoding/json"
	"testing"
)

func TestPhaseNames(t *testing.T) {
	seen := make(map[string]struct{})
	for phase := Phase(0); phase < NumPhases; phase++ {
		name := phase.String()
		if name == phaseUnknown {
			t.Errorf("phase %d has no name", phase)
		}
		if _, ok := seen[name]; ok {
			t.Errorf("duplicate phase name: %s", name)
		}
		seen[name] = struct{}{}
	}
	if Phase(NumPhases).String() != phaseUnknown {
		t.Error("out of range phase has a name")
	}
}

func TestPartitionDecode(t *testing.T) {
	var partition Partition
	err := json.Unmarshal(
		[]byte(`{"Path":"/dev/sda1","FileSystemType":"vfat","Role":"esp"}`),
		&partition)
	if err != nil {
		t.Fatal(err)
	}
	if partition.FileSystemType != FileSystemTypeVfat {
		t.Errorf("expected vfat, got: %s", partition.FileSystemType)
	}
	if partition.Role != PartitionRoleEsp {
		t.Errorf("expected esp, got: %s", partition.Role)
	}
	err = json.Unmarshal([]byte(`{"FileSystemType":"btrfs"}`), &partition)
	if err == nil {
		t.Error("no error for unknown file-system type")
	}
}

func TestPhaseStateSet(t *testing.T) {
	var state PhaseState
	if err := state.Set("failed"); err != nil {
		t.Fatal(err)
	}
	if state != PhaseStateFailed {
		t.Errorf("expected failed, got: %s", state)
	}
	if err := state.Set("rolled-back"); err == nil {
		t.Error("no error for unknown state")
	}
}

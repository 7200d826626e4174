package installer

import (
	"errors"
)

const (
	fileSystemTypeUnknown = "UNKNOWN FileSystemType"
	partitionRoleUnknown  = "UNKNOWN PartitionRole"
	phaseUnknown          = "UNKNOWN Phase"
	phaseStateUnknown     = "UNKNOWN PhaseState"
)

var (
	fileSystemTypeToText = map[FileSystemType]string{
		FileSystemTypeExt4: "ext4",
		FileSystemTypeVfat: "vfat",
	}
	textToFileSystemType map[string]FileSystemType
)

var (
	partitionRoleToText = map[PartitionRole]string{
		PartitionRoleEsp:  "esp",
		PartitionRoleRoot: "root",
	}
	textToPartitionRole map[string]PartitionRole
)

var (
	phaseToText = map[Phase]string{
		PhasePreflight: "preflight",
		PhasePartition: "partition",
		PhaseFormat:    "format",
		PhaseMount:     "mount",
		PhaseBootstrap: "bootstrap",
		PhasePackages:  "packages",
		PhaseConfigure: "configure",
		PhaseChroot:    "chroot",
		PhaseCleanup:   "cleanup",
		PhaseSummary:   "summary",
	}
	textToPhase map[string]Phase
)

var (
	phaseStateToText = map[PhaseState]string{
		PhaseStateNotStarted: "not-started",
		PhaseStateRunning:    "running",
		PhaseStateSucceeded:  "succeeded",
		PhaseStateFailed:     "failed",
	}
	textToPhaseState map[string]PhaseState
)

func init() {
	textToFileSystemType = make(map[string]FileSystemType,
		len(fileSystemTypeToText))
	for fileSystemType, text := range fileSystemTypeToText {
		textToFileSystemType[text] = fileSystemType
	}
	textToPartitionRole = make(map[string]PartitionRole,
		len(partitionRoleToText))
	for partitionRole, text := range partitionRoleToText {
		textToPartitionRole[text] = partitionRole
	}
	textToPhase = make(map[string]Phase, len(phaseToText))
	for phase, text := range phaseToText {
		textToPhase[text] = phase
	}
	textToPhaseState = make(map[string]PhaseState, len(phaseStateToText))
	for phaseState, text := range phaseStateToText {
		textToPhaseState[text] = phaseState
	}
}

func (fileSystemType FileSystemType) MarshalText() ([]byte, error) {
	if text := fileSystemType.String(); text == fileSystemTypeUnknown {
		return nil, errors.New(text)
	} else {
		return []byte(text), nil
	}
}

func (fileSystemType *FileSystemType) Set(value string) error {
	if val, ok := textToFileSystemType[value]; !ok {
		return errors.New(fileSystemTypeUnknown)
	} else {
		*fileSystemType = val
		return nil
	}
}

func (fileSystemType FileSystemType) String() string {
	if str, ok := fileSystemTypeToText[fileSystemType]; !ok {
		return fileSystemTypeUnknown
	} else {
		return str
	}
}

func (fileSystemType *FileSystemType) UnmarshalText(text []byte) error {
	return fileSystemType.Set(string(text))
}

func (partitionRole PartitionRole) MarshalText() ([]byte, error) {
	if text := partitionRole.String(); text == partitionRoleUnknown {
		return nil, errors.New(text)
	} else {
		return []byte(text), nil
	}
}

func (partitionRole *PartitionRole) Set(value string) error {
	if val, ok := textToPartitionRole[value]; !ok {
		return errors.New(partitionRoleUnknown)
	} else {
		*partitionRole = val
		return nil
	}
}

func (partitionRole PartitionRole) String() string {
	if str, ok := partitionRoleToText[partitionRole]; !ok {
		return partitionRoleUnknown
	} else {
		return str
	}
}

func (partitionRole *PartitionRole) UnmarshalText(text []byte) error {
	return partitionRole.Set(string(text))
}

func (phase Phase) MarshalText() ([]byte, error) {
	if text := phase.String(); text == phaseUnknown {
		return nil, errors.New(text)
	} else {
		return []byte(text), nil
	}
}

func (phase *Phase) Set(value string) error {
	if val, ok := textToPhase[value]; !ok {
		return errors.New(phaseUnknown)
	} else {
		*phase = val
		return nil
	}
}

func (phase Phase) String() string {
	if str, ok := phaseToText[phase]; !ok {
		return phaseUnknown
	} else {
		return str
	}
}

func (phase *Phase) UnmarshalText(text []byte) error {
	return phase.Set(string(text))
}

func (phaseState PhaseState) MarshalText() ([]byte, error) {
	if text := phaseState.String(); text == phaseStateUnknown {
		return nil, errors.New(text)
	} else {
		return []byte(text), nil
	}
}

func (phaseState *PhaseState) Set(value string) error {
	if val, ok := textToPhaseState[value]; !ok {
		return errors.New(phaseStateUnknown)
	} else {
		*phaseState = val
		return nil
	}
}

func (phaseState PhaseState) String() string {
	if str, ok := phaseStateToText[phaseState]; !ok {
		return phaseStateUnknown
	} else {
		return str
	}
}

func (phaseState *PhaseState) UnmarshalText(text []byte) error {
	return phaseState.Set(string(text))
}

package installer

import "time"

const (
	FileSystemTypeExt4 = 0
	FileSystemTypeVfat = 1

	PartitionRoleEsp  = 0
	PartitionRoleRoot = 1

	PhasePreflight = 0
	PhasePartition = 1
	PhaseFormat    = 2
	PhaseMount     = 3
	PhaseBootstrap = 4
	PhasePackages  = 5
	PhaseConfigure = 6
	PhaseChroot    = 7
	PhaseCleanup   = 8
	PhaseSummary   = 9
	NumPhases      = 10

	PhaseStateNotStarted = 0
	PhaseStateRunning    = 1
	PhaseStateSucceeded  = 2
	PhaseStateFailed     = 3
)

type FileSystemType uint

type PartitionRole uint

type Phase uint

type PhaseState uint

// InstallConfig describes a complete installation. It is built once at
// start-up and must not be modified after the first phase starts. Device
// names the whole disk (e.g. /dev/nvme0n1) and EfiSize the size of the ESP
// (e.g. 500MiB). An empty ZramSize disables zram swap.
type InstallConfig struct {
	Device             string
	EfiSize            string
	Hostname           string   `json:",omitempty"`
	Timezone           string   `json:",omitempty"`
	Locale             string   `json:",omitempty"`
	Keymap             string   `json:",omitempty"`
	Architecture       string   `json:",omitempty"`
	Repository         string   `json:",omitempty"`
	Packages           []string `json:",omitempty"`
	Username           string   `json:",omitempty"`
	RootPassword       string   `json:",omitempty"`
	UserPassword       string   `json:",omitempty"`
	MountPoint         string   `json:",omitempty"`
	UserGroups         []string `json:",omitempty"`
	UserShell          string   `json:",omitempty"`
	BootloaderId       string   `json:",omitempty"`
	ZramSize           string   `json:",omitempty"`
	Services           []string `json:",omitempty"`
	AuthorizedKey      string   `json:",omitempty"`
	SettleDelaySeconds uint     `json:",omitempty"`
	ConnectivityHost   string   `json:",omitempty"`
}

type Partition struct {
	Path           string
	SizeBytes      uint64         `json:",omitempty"`
	FileSystemType FileSystemType `json:",omitempty"`
	Role           PartitionRole  `json:",omitempty"`
}

type PartitionLayout struct {
	Efi  Partition
	Root Partition
}

type FilesystemIdentity struct {
	EfiUuid  string
	RootUuid string
}

// PhaseResult records the outcome of one phase of an installation.
type PhaseResult struct {
	Phase    Phase
	State    PhaseState
	Duration time.Duration `json:",omitempty"`
	Error    string        `json:",omitempty"`
}

// Package phases runs an installation as an ordered sequence of phases and
// records the state and duration of each one.
package phases

import (
	"io"
	"sync"
	"time"

	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/installer/disk"
	"github.com/Cloud-Foundations/metal-installer/installer/mount"
	"github.com/Cloud-Foundations/metal-installer/installer/preflight"
	"github.com/Cloud-Foundations/metal-installer/installer/prompt"
	"github.com/Cloud-Foundations/metal-installer/lib/backoffdelay"
	"github.com/Cloud-Foundations/metal-installer/lib/fsutil/mounts"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
	"github.com/Cloud-Foundations/metal-installer/lib/retry"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
	"github.com/Cloud-Foundations/tricorder/go/tricorder"
)

// PhaseError is returned by Install when a phase fails.
type PhaseError struct {
	Phase proto.Phase
	Err   error
}

type Params struct {
	CleanupOnFailure bool // Unmount the target if a later phase fails.
	Color            bool
	CopyLogs         func(session *mount.Session) error // Before unmounting.
	DeviceTimeout    time.Duration
	Euid             func() int
	GetMountTable    func() (*mounts.MountTable, error)
	KeysDirectory    string
	Logger           log.DebugLogger
	Mounter          mount.Mounter
	Prober           preflight.NetworkProber
	Prompter         prompt.Prompter
	RevealPasswords  bool
	Retry            retry.Params
	Runner           command.Runner
	Settler          backoffdelay.Sleeper
	SummaryWriter    io.Writer // Default: os.Stdout.
	SysfsDirectory   string
	Tracker          *Tracker // Default: a new Tracker.
	WaitForDevice    disk.DeviceWaiter
}

// Result holds what an installation produced. Fields are filled in as the
// phases which produce them complete.
type Result struct {
	Identity proto.FilesystemIdentity
	Layout   proto.PartitionLayout
	Results  []proto.PhaseResult
	Session  *mount.Session
}

// Tracker records the state and duration of each phase. It is safe for
// concurrent use.
type Tracker struct {
	mutex      sync.Mutex
	current    proto.Phase // Protected by mutex.
	results    [proto.NumPhases]proto.PhaseResult
	startTimes [proto.NumPhases]time.Time
	durations  [proto.NumPhases]*tricorder.CumulativeDistribution
}

// Install runs the preflight, partition, format, mount, bootstrap, packages,
// configure, chroot, cleanup and summary phases in order. The first phase to
// fail stops the installation and its error is returned as a *PhaseError.
// After a failure the target stays mounted for inspection unless
// params.CleanupOnFailure is true. The partition and format phases are never
// undone.
func Install(config proto.InstallConfig, params Params) (*Result, error) {
	return install(config, params)
}

func (e *PhaseError) Error() string {
	return "phase: " + e.Phase.String() + " failed: " + e.Err.Error()
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

func NewTracker() *Tracker {
	return newTracker()
}

// Current returns the phase most recently started.
func (t *Tracker) Current() proto.Phase {
	return t.getCurrent()
}

// Finish marks phase as succeeded if err is nil and as failed otherwise. It
// returns the time since Start was called for phase.
func (t *Tracker) Finish(phase proto.Phase, err error) time.Duration {
	return t.finish(phase, err)
}

// RegisterMetrics publishes the phase states and durations as tricorder
// metrics under dirname. It may only be called once per dirname.
func (t *Tracker) RegisterMetrics(dirname string) error {
	return t.registerMetrics(dirname)
}

// Result returns the result for phase.
func (t *Tracker) Result(phase proto.Phase) proto.PhaseResult {
	return t.getResult(phase)
}

// Results returns the results of all phases, in phase order.
func (t *Tracker) Results() []proto.PhaseResult {
	return t.getResults()
}

// Start marks phase as running.
func (t *Tracker) Start(phase proto.Phase) {
	t.start(phase)
}

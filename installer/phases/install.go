package phases

import (
	"os"

	"github.com/Cloud-Foundations/metal-installer/installer/bootstrap"
	"github.com/Cloud-Foundations/metal-installer/installer/chroot"
	"github.com/Cloud-Foundations/metal-installer/installer/disk"
	"github.com/Cloud-Foundations/metal-installer/installer/mount"
	"github.com/Cloud-Foundations/metal-installer/installer/preflight"
	"github.com/Cloud-Foundations/metal-installer/installer/report"
	"github.com/Cloud-Foundations/metal-installer/installer/sysconfig"
	"github.com/Cloud-Foundations/metal-installer/lib/format"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

type installer struct {
	config proto.InstallConfig
	params Params
	result Result
}

type phaseFunc func() error

func install(config proto.InstallConfig, params Params) (*Result, error) {
	params.prepare()
	in := &installer{config: config, params: params}
	steps := []struct {
		phase proto.Phase
		fn    phaseFunc
	}{
		{proto.PhasePreflight, in.checkPreflight},
		{proto.PhasePartition, in.partitionDisk},
		{proto.PhaseFormat, in.formatPartitions},
		{proto.PhaseMount, in.mountTarget},
		{proto.PhaseBootstrap, in.bootstrapTarget},
		{proto.PhasePackages, in.installPackages},
		{proto.PhaseConfigure, in.applyConfig},
		{proto.PhaseChroot, in.runChroot},
		{proto.PhaseCleanup, in.cleanup},
		{proto.PhaseSummary, in.writeSummary},
	}
	for _, step := range steps {
		if err := in.runPhase(step.phase, step.fn); err != nil {
			in.abandon(step.phase)
			in.result.Results = params.Tracker.Results()
			return &in.result, err
		}
	}
	in.result.Results = params.Tracker.Results()
	return &in.result, nil
}

func (p *Params) prepare() {
	if p.Prober == nil {
		p.Prober = preflight.NewNetworkProber(preflight.ProbeOptions{},
			p.Logger)
	}
	if p.SummaryWriter == nil {
		p.SummaryWriter = os.Stdout
	}
	if p.Tracker == nil {
		p.Tracker = newTracker()
	}
}

// abandon is called after failedPhase failed. The target is unmounted only
// if asked for, otherwise it is left for inspection.
func (in *installer) abandon(failedPhase proto.Phase) {
	logger := in.params.Logger
	session := in.result.Session
	if session == nil || failedPhase >= proto.PhaseCleanup {
		return
	}
	if !in.params.CleanupOnFailure {
		logger.Printf("leaving target mounted under: %s for inspection\n",
			session.RootDir)
		return
	}
	in.runPhase(proto.PhaseCleanup, in.cleanup)
}

func (in *installer) runPhase(phase proto.Phase, fn phaseFunc) error {
	logger := in.params.Logger
	tracker := in.params.Tracker
	logger.Printf("starting phase: %s\n", phase)
	tracker.Start(phase)
	err := fn()
	duration := tracker.Finish(phase, err)
	if err != nil {
		logger.Printf("phase: %s failed after %s: %s\n",
			phase, format.Duration(duration), err)
		return &PhaseError{Phase: phase, Err: err}
	}
	logger.Printf("phase: %s completed in %s\n",
		phase, format.Duration(duration))
	return nil
}

func (in *installer) bootstrapParams() bootstrap.Params {
	return bootstrap.Params{
		KeysDirectory: in.params.KeysDirectory,
		Logger:        in.params.Logger,
		Runner:        in.params.Runner,
	}
}

func (in *installer) diskParams() disk.Params {
	return disk.Params{
		DeviceTimeout: in.params.DeviceTimeout,
		Logger:        in.params.Logger,
		Prompter:      in.params.Prompter,
		Runner:        in.params.Runner,
		Settler:       in.params.Settler,
		WaitForDevice: in.params.WaitForDevice,
	}
}

func (in *installer) checkPreflight() error {
	return preflight.Check(in.config, preflight.Params{
		Euid:           in.params.Euid,
		Logger:         in.params.Logger,
		Prober:         in.params.Prober,
		Prompter:       in.params.Prompter,
		Retry:          in.params.Retry,
		SysfsDirectory: in.params.SysfsDirectory,
	})
}

func (in *installer) partitionDisk() error {
	layout, err := disk.MakeLayout(in.config)
	if err != nil {
		return err
	}
	in.result.Layout = layout
	return disk.Provision(in.config, layout, in.diskParams())
}

func (in *installer) formatPartitions() error {
	identity, err := disk.Format(in.result.Layout, in.diskParams())
	if err != nil {
		return err
	}
	in.result.Identity = identity
	return nil
}

func (in *installer) mountTarget() error {
	session, err := mount.Mount(in.config, in.result.Layout,
		in.result.Identity, mount.Params{
			Logger:        in.params.Logger,
			Mounter:       in.params.Mounter,
			GetMountTable: in.params.GetMountTable,
		})
	in.result.Session = session
	return err
}

func (in *installer) bootstrapTarget() error {
	return bootstrap.Bootstrap(in.config, in.result.Session,
		in.bootstrapParams())
}

func (in *installer) installPackages() error {
	return bootstrap.InstallPackages(in.config, in.result.Session,
		in.bootstrapParams())
}

func (in *installer) applyConfig() error {
	return sysconfig.Apply(in.config, in.result.Identity, in.result.Session,
		sysconfig.Params{Logger: in.params.Logger, Runner: in.params.Runner})
}

func (in *installer) runChroot() error {
	return chroot.Run(in.config, in.result.Session,
		chroot.Params{Logger: in.params.Logger, Runner: in.params.Runner})
}

// cleanup never fails: problems copying logs or unmounting are logged.
func (in *installer) cleanup() error {
	logger := in.params.Logger
	session := in.result.Session
	if session == nil {
		return nil
	}
	if in.params.CopyLogs != nil {
		if err := in.params.CopyLogs(session); err != nil {
			logger.Printf("error copying logs: %s\n", err)
		}
	}
	numUnmounted := session.Cleanup()
	logger.Printf("unmounted %d file-systems under: %s\n",
		numUnmounted, session.RootDir)
	return nil
}

func (in *installer) writeSummary() error {
	results := in.params.Tracker.Results()
	return report.Write(in.params.SummaryWriter, in.config, in.result.Layout,
		in.result.Identity, report.Params{
			Color:           in.params.Color,
			RevealPasswords: in.params.RevealPasswords,
			Results:         results[:proto.PhaseSummary],
		})
}

package phases

import (
	"github.com/Cloud-Foundations/tricorder/go/tricorder"
	"github.com/Cloud-Foundations/tricorder/go/tricorder/units"

	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

func (t *Tracker) registerMetrics(dirname string) error {
	dir, err := tricorder.RegisterDirectory(dirname)
	if err != nil {
		return err
	}
	err = dir.RegisterMetric("current-phase",
		func() string { return t.getCurrent().String() },
		units.None, "phase most recently started")
	if err != nil {
		return err
	}
	latencyBucketer := tricorder.NewGeometricBucketer(0.1, 1e6)
	for phase := proto.Phase(0); phase < proto.NumPhases; phase++ {
		phaseDir, err := dir.RegisterDirectory("phases/" + phase.String())
		if err != nil {
			return err
		}
		phase := phase
		err = phaseDir.RegisterMetric("state",
			func() string { return t.getResult(phase).State.String() },
			units.None, "state of phase")
		if err != nil {
			return err
		}
		distribution := latencyBucketer.NewCumulativeDistribution()
		err = phaseDir.RegisterMetric("duration", distribution,
			units.Millisecond, "phase duration")
		if err != nil {
			return err
		}
		t.mutex.Lock()
		t.durations[phase] = distribution
		t.mutex.Unlock()
	}
	return nil
}

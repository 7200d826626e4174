package phases

import (
	"time"

	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

func newTracker() *Tracker {
	t := &Tracker{}
	for phase := range t.results {
		t.results[phase].Phase = proto.Phase(phase)
	}
	return t
}

func (t *Tracker) finish(phase proto.Phase, err error) time.Duration {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	result := &t.results[phase]
	result.Duration = time.Since(t.startTimes[phase])
	if err == nil {
		result.State = proto.PhaseStateSucceeded
	} else {
		result.State = proto.PhaseStateFailed
		result.Error = err.Error()
	}
	if distribution := t.durations[phase]; distribution != nil {
		distribution.Add(result.Duration)
	}
	return result.Duration
}

func (t *Tracker) getCurrent() proto.Phase {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.current
}

func (t *Tracker) getResult(phase proto.Phase) proto.PhaseResult {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.results[phase]
}

func (t *Tracker) getResults() []proto.PhaseResult {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	results := make([]proto.PhaseResult, len(t.results))
	copy(results, t.results[:])
	return results
}

func (t *Tracker) start(phase proto.Phase) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.current = phase
	t.startTimes[phase] = time.Now()
	t.results[phase] = proto.PhaseResult{
		Phase: phase,
		State: proto.PhaseStateRunning,
	}
}

package retry

import (
	"errors"
	"fmt"
	"time"

	"github.com/Cloud-Foundations/metal-installer/lib/backoffdelay"
)

var (
	defaultSleeper = &simpleSleeper{}
	errFailed      = errors.New("failed")
)

type simpleSleeper struct{}

func retry(fn func() error, params Params) error {
	params.prepare()
	stopTime := time.Now().Add(params.RetryTimeout)
	var tryCount uint64
	for {
		tryCount++
		err := fn()
		if err == nil {
			return nil
		}
		if params.RetryTimeout > 0 && time.Since(stopTime) >= 0 {
			return limitError("timed out", err)
		}
		if params.MaxRetries > 0 && tryCount >= params.MaxRetries {
			return limitError("too many retries", err)
		}
		params.Sleeper.Sleep()
	}
}

func limitError(reason string, err error) error {
	if err == errFailed {
		return errors.New(reason)
	}
	return fmt.Errorf("%s: %w", reason, err)
}

func (p *Params) prepare() {
	if p.Sleeper == nil {
		p.Sleeper = defaultSleeper
	} else if resetter, ok := p.Sleeper.(backoffdelay.Resetter); ok {
		resetter.Reset()
	}
}

func (s *simpleSleeper) Sleep() {
	time.Sleep(100 * time.Millisecond)
}

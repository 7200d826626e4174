package retry

import (
	"time"

	"github.com/Cloud-Foundations/metal-installer/lib/backoffdelay"
)

type Params struct {
	MaxRetries   uint64               // Default: unlimited.
	RetryTimeout time.Duration        // Default: unlimited.
	Sleeper      backoffdelay.Sleeper // Default: 100 milliseconds.
}

// Retry will run the specified function until it returns true or retry limits
// are exceeded. It returns an error if retry limits are exceeded.
func Retry(fn func() bool, params Params) error {
	return retry(func() error {
		if fn() {
			return nil
		}
		return errFailed
	}, params)
}

// RetryWithError will run the specified function until it returns nil or
// retry limits are exceeded. If limits are exceeded the last error returned
// by fn is returned.
func RetryWithError(fn func() error, params Params) error {
	return retry(fn, params)
}

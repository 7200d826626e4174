package retry

import (
	"errors"
	"strings"
	"testing"

	"github.com/Cloud-Foundations/metal-installer/lib/backoffdelay"
)

var errProbe = errors.New("probe failed")

func TestRetryWithErrorLimit(t *testing.T) {
	var count int
	err := RetryWithError(func() error {
		count++
		return errProbe
	}, Params{MaxRetries: 3, Sleeper: backoffdelay.NewFixed(0)})
	if count != 3 {
		t.Errorf("expected 3 tries, got: %d", count)
	}
	if !errors.Is(err, errProbe) {
		t.Errorf("last error not wrapped: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "too many retries") {
		t.Errorf("unexpected error: %s", err)
	}
}

func TestRetrySucceeds(t *testing.T) {
	var count int
	err := Retry(func() bool {
		count++
		return count == 2
	}, Params{MaxRetries: 5, Sleeper: backoffdelay.NewFixed(0)})
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 tries, got: %d", count)
	}
}

package osutil

import (
	"time"

	"github.com/Cloud-Foundations/metal-installer/lib/log"
)

// HardReboot will try to sync file-system data and then issues a reboot system
// call. It will not block indefinitely on syncing. It doesn't depend on a
// working "reboot" programme, which may not exist in a live environment.
func HardReboot(logger log.Logger) error {
	return hardReboot(logger)
}

// SyncTimeout will call the sync() system call, waiting at most timeout for it
// to complete.
func SyncTimeout(timeout time.Duration) error {
	return syncTimeout(timeout)
}

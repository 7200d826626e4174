package osutil

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/Cloud-Foundations/metal-installer/lib/log"
)

type flusher interface {
	Flush() error
}

func hardReboot(logger log.Logger) error {
	syncAndWait(5*time.Second, logger)
	syncAndWait(5*time.Second, logger)
	logger.Println("Calling reboot() system call and wait")
	if logger, ok := logger.(flusher); ok {
		logger.Flush()
	}
	time.Sleep(time.Second)
	errorChannel := make(chan error, 1)
	timer := time.NewTimer(time.Second)
	go func() {
		errorChannel <- unix.Reboot(unix.LINUX_REBOOT_CMD_RESTART)
	}()
	select {
	case <-timer.C:
		return errors.New("still alive after a hard reboot")
	case err := <-errorChannel:
		if !timer.Stop() {
			<-timer.C
		}
		return err
	}
}

func syncAndWait(timeout time.Duration, logger log.Logger) {
	logger.Println("Calling sync() system call and wait")
	if err := syncTimeout(timeout); err != nil {
		logger.Printf("Error syncing: %s\n", err)
	}
}

func syncTimeout(timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	waitChannel := make(chan struct{}, 1)
	go func() {
		unix.Sync()
		waitChannel <- struct{}{}
	}()
	select {
	case <-timer.C:
		return fmt.Errorf("timed out waiting for sync() system call")
	case <-waitChannel:
		if !timer.Stop() {
			<-timer.C
		}
		return nil
	}
}

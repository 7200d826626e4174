package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/Cloud-Foundations/metal-installer/lib/backoffdelay"
	"github.com/Cloud-Foundations/metal-installer/lib/constants"
	"github.com/Cloud-Foundations/metal-installer/lib/errors"
	"github.com/Cloud-Foundations/metal-installer/lib/retry"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

func check(config proto.InstallConfig, params Params) error {
	params.prepare()
	if euid := params.Euid(); euid != 0 {
		return errors.NewPermissionDeniedError("installer", "run",
			fmt.Sprintf("effective UID is %d, must be root", euid))
	}
	params.Logger.Debugln(0, "running as root")
	efiDir := filepath.Join(params.SysfsDirectory, "firmware", "efi")
	if _, err := os.Stat(efiDir); err != nil {
		if os.IsNotExist(err) {
			return errors.NewFailedPreconditionError("firmware", "not UEFI",
				efiDir+" does not exist: boot the installer in UEFI mode")
		}
		return fmt.Errorf("error checking for UEFI: %s", err)
	}
	params.Logger.Debugln(0, "booted in UEFI mode")
	return checkNetwork(config.ConnectivityHost, params)
}

func checkNetwork(host string, params Params) error {
	err := retry.RetryWithError(func() error {
		err := params.Prober.Probe(host)
		if err != nil {
			params.Logger.Printf("network probe for: %s failed: %s\n", host, err)
		}
		return err
	}, params.Retry)
	if err == nil {
		params.Logger.Printf("network reachable: %s\n", host)
		return nil
	}
	proceed, promptErr := params.Prompter.Confirm(fmt.Sprintf(
		"Network check failed (%s). Continue without network?", err))
	if promptErr != nil {
		return promptErr
	}
	if !proceed {
		return errors.NewAbortedError("installation",
			"operator declined to continue without network")
	}
	params.Logger.Println("operator chose to continue without network")
	return nil
}

func (p *Params) prepare() {
	if p.Euid == nil {
		p.Euid = unix.Geteuid
	}
	if p.Retry.MaxRetries == 0 && p.Retry.RetryTimeout == 0 {
		p.Retry.MaxRetries = 3
	}
	if p.Retry.Sleeper == nil {
		p.Retry.Sleeper = backoffdelay.NewExponential(time.Second,
			4*time.Second, 0)
	}
	if p.SysfsDirectory == "" {
		p.SysfsDirectory = constants.SysfsDirectory
	}
}

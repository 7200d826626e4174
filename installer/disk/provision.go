package disk

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/lib/backoffdelay"
	"github.com/Cloud-Foundations/metal-installer/lib/errors"
	libformat "github.com/Cloud-Foundations/metal-installer/lib/format"
	"github.com/Cloud-Foundations/metal-installer/lib/fsutil"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

func waitForBlockAvailable(pathname string, timeout time.Duration) error {
	_, _, err := fsutil.WaitForBlockAvailable(pathname, timeout)
	return err
}

func partedArgs(device string, efiSizeMiB uint64) []string {
	efiEnd := strconv.FormatUint(1+efiSizeMiB, 10) + "MiB"
	return []string{
		"-s", device, "--",
		"mklabel", "gpt",
		"mkpart", "ESP", "fat32", "1MiB", efiEnd,
		"set", "1", "esp", "on",
		"mkpart", "root", "ext4", efiEnd, "100%",
	}
}

func provision(config proto.InstallConfig, layout proto.PartitionLayout,
	params Params) error {
	params.prepare(config)
	device := config.Device
	output, err := params.Runner.Output(command.Command{
		Name: "lsblk",
		Args: []string{"-f", device},
	})
	if err != nil {
		return err
	}
	if err := params.Prompter.Show(string(output)); err != nil {
		return err
	}
	confirmed, err := params.Prompter.ConfirmExact(
		fmt.Sprintf("ALL DATA ON %s WILL BE DESTROYED.", device),
		ConfirmationWord)
	if err != nil {
		return err
	}
	if !confirmed {
		return errors.NewAbortedError("disk wipe",
			"confirmation was not "+ConfirmationWord)
	}
	params.Logger.Printf("wiping: %s\n", device)
	err = params.Runner.Run(command.Command{
		Name: "wipefs",
		Args: []string{"-a", device},
	})
	if err != nil {
		return err
	}
	efiSizeMiB := layout.Efi.SizeBytes >> 20
	err = params.Runner.Run(command.Command{
		Name: "parted",
		Args: partedArgs(device, efiSizeMiB),
	})
	if err != nil {
		return err
	}
	params.Logger.Printf("partitioned: %s with %d MiB ESP\n",
		device, efiSizeMiB)
	params.Settler.Sleep()
	err = params.Runner.Run(command.Command{
		Name: "partprobe",
		Args: []string{device},
	})
	if err != nil {
		params.Logger.Printf("ignoring partition table re-read failure: %s\n",
			err)
	}
	params.Settler.Sleep()
	for _, partition := range []proto.Partition{layout.Efi, layout.Root} {
		startTime := time.Now()
		err := params.WaitForDevice(partition.Path, params.DeviceTimeout)
		if err != nil {
			return err
		}
		params.Logger.Debugf(0, "%s available after %s\n",
			partition.Path, libformat.Duration(time.Since(startTime)))
	}
	return nil
}

func (p *Params) prepare(config proto.InstallConfig) {
	if p.DeviceTimeout <= 0 {
		p.DeviceTimeout = 10 * time.Second
	}
	if p.Settler == nil {
		p.Settler = backoffdelay.NewFixed(
			time.Duration(config.SettleDelaySeconds) * time.Second)
	}
	if p.WaitForDevice == nil {
		p.WaitForDevice = waitForBlockAvailable
	}
}

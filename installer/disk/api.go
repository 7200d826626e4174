package disk

import (
	"time"

	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/installer/prompt"
	"github.com/Cloud-Foundations/metal-installer/lib/backoffdelay"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

const ConfirmationWord = "YES"

// DeviceWaiter waits up to timeout for pathname to become a block device.
type DeviceWaiter func(pathname string, timeout time.Duration) error

type Params struct {
	DeviceTimeout time.Duration // Default: 10 seconds.
	Logger        log.DebugLogger
	Prompter      prompt.Prompter
	Runner        command.Runner
	Settler       backoffdelay.Sleeper // Default: config.SettleDelaySeconds.
	WaitForDevice DeviceWaiter         // Default: fsutil.WaitForBlockAvailable.
}

// Format makes a FAT32 file-system on the EFI partition and an ext4
// file-system on the root partition, and returns their UUIDs. An empty UUID
// is an *errors.FailedPreconditionError.
func Format(layout proto.PartitionLayout,
	params Params) (proto.FilesystemIdentity, error) {
	return format(layout, params)
}

// MakeLayout derives the partition layout for config.Device.
func MakeLayout(config proto.InstallConfig) (proto.PartitionLayout, error) {
	return makeLayout(config)
}

// PartitionName returns the device path of partition number on device.
// Devices whose base name begins with "nvme" or "mmcblk" get a "p" before the
// partition number (/dev/nvme0n1p1), all others do not (/dev/sda1).
func PartitionName(device string, number uint) string {
	return partitionName(device, number)
}

// Provision shows the current contents of the device and requires the
// operator to type ConfirmationWord. Any other answer yields an
// *errors.AbortedError before the device is touched. The device is then
// wiped and given a GPT label with an EFI system partition and a root
// partition spanning the rest of the device.
func Provision(config proto.InstallConfig, layout proto.PartitionLayout,
	params Params) error {
	return provision(config, layout, params)
}

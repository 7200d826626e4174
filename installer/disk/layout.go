package disk

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Cloud-Foundations/metal-installer/installer/config"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

var partitionPrefixedControllers = []string{"mmcblk", "nvme"}

func makeLayout(installConfig proto.InstallConfig) (
	proto.PartitionLayout, error) {
	efiSizeMiB, err := config.EfiSizeMiB(installConfig)
	if err != nil {
		return proto.PartitionLayout{}, err
	}
	return proto.PartitionLayout{
		Efi: proto.Partition{
			Path:           partitionName(installConfig.Device, 1),
			SizeBytes:      efiSizeMiB << 20,
			FileSystemType: proto.FileSystemTypeVfat,
			Role:           proto.PartitionRoleEsp,
		},
		Root: proto.Partition{
			Path:           partitionName(installConfig.Device, 2),
			FileSystemType: proto.FileSystemTypeExt4,
			Role:           proto.PartitionRoleRoot,
		},
	}, nil
}

func partitionName(device string, number uint) string {
	base := filepath.Base(device)
	suffix := strconv.FormatUint(uint64(number), 10)
	for _, prefix := range partitionPrefixedControllers {
		if strings.HasPrefix(base, prefix) {
			return device + "p" + suffix
		}
	}
	return device + suffix
}

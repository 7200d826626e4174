package disk

import (
	"strings"
	"time"

	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/lib/errors"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

const (
	efiFsLabel  = "EFI"
	rootFsLabel = "rootfs"
)

func format(layout proto.PartitionLayout,
	params Params) (proto.FilesystemIdentity, error) {
	var identity proto.FilesystemIdentity
	err := makeFileSystem(layout.Efi, params)
	if err != nil {
		return identity, err
	}
	if err := makeFileSystem(layout.Root, params); err != nil {
		return identity, err
	}
	if identity.EfiUuid, err = readUuid(layout.Efi, params); err != nil {
		return identity, err
	}
	if identity.RootUuid, err = readUuid(layout.Root, params); err != nil {
		return identity, err
	}
	return identity, nil
}

func makeFileSystem(partition proto.Partition, params Params) error {
	var cmd command.Command
	switch partition.FileSystemType {
	case proto.FileSystemTypeVfat:
		cmd = command.Command{
			Name: "mkfs.vfat",
			Args: []string{"-F", "32", "-n", efiFsLabel, partition.Path},
		}
	case proto.FileSystemTypeExt4:
		cmd = command.Command{
			Name: "mkfs.ext4",
			Args: []string{"-F", "-L", rootFsLabel, partition.Path},
		}
	default:
		return errors.NewInvalidArgumentError("FileSystemType",
			partition.FileSystemType.String())
	}
	startTime := time.Now()
	if err := params.Runner.Run(cmd); err != nil {
		return err
	}
	params.Logger.Printf("made %s file-system on %s in %s\n",
		partition.FileSystemType, partition.Path, time.Since(startTime))
	return nil
}

func readUuid(partition proto.Partition, params Params) (string, error) {
	output, err := params.Runner.Output(command.Command{
		Name: "blkid",
		Args: []string{"-s", "UUID", "-o", "value", partition.Path},
	})
	if err != nil {
		return "", err
	}
	uuid := strings.TrimSpace(string(output))
	if uuid == "" {
		return "", errors.NewFailedPreconditionError(
			"file-system UUID for "+partition.Path, "empty",
			"blkid returned no UUID")
	}
	params.Logger.Debugf(0, "%s has UUID: %s\n", partition.Path, uuid)
	return uuid, nil
}

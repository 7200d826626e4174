//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/Cloud-Foundations/metal-installer/installer/disk"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
)

func partitionNamesSubcommand(args []string, logger log.DebugLogger) error {
	fmt.Println(disk.PartitionName(args[0], 1))
	fmt.Println(disk.PartitionName(args[0], 2))
	return nil
}

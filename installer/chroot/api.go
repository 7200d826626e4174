package chroot

import (
	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/installer/mount"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

const (
	SudoersFile = "/etc/sudoers"
	SudoersRule = "%wheel ALL=(ALL:ALL) ALL"
)

// Batch is an ordered list of shell command lines which are run in a single
// shell session inside the target. The first failing command ends the
// session and fails the batch.
type Batch struct {
	Name     string
	Commands []string
}

type Params struct {
	Logger log.DebugLogger
	Runner command.Runner
}

// Batches returns the batches which finish an installation: locale
// generation and package reconfiguration, the root password, the user
// account (with the authorized key, if any, in a .ssh directory owned by the
// user) and the boot loader.
func Batches(config proto.InstallConfig) ([]Batch, error) {
	return batches(config)
}

// GrubTarget returns the grub-install EFI target for a Void architecture.
func GrubTarget(architecture string) string {
	return grubTarget(architecture)
}

// Run runs each of Batches(config) inside session.RootDir, stopping at the
// first batch which fails.
func Run(config proto.InstallConfig, session *mount.Session,
	params Params) error {
	return run(config, session, params)
}

// RunBatch runs batch inside rootDir with xchroot, feeding the script to
// /bin/sh on standard input.
func RunBatch(rootDir string, batch Batch, params Params) error {
	return runBatch(rootDir, batch, params)
}

// SudoersRuleCommand returns a shell command line which appends SudoersRule
// to filename unless an identical line is already present.
func SudoersRuleCommand(filename string) string {
	return sudoersRuleCommand(filename)
}

// Script returns the shell script for the batch.
func (b Batch) Script() string {
	return b.script()
}

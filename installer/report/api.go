// Package report renders the summary shown to the operator at the end of an
// installation.
package report

import (
	"io"

	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

const PasswordMask = "********"

type Params struct {
	Color           bool
	RevealPasswords bool
	Results         []proto.PhaseResult
}

// Write renders the summary of an installation to writer. Passwords are
// replaced with PasswordMask unless params.RevealPasswords is true.
func Write(writer io.Writer, config proto.InstallConfig,
	layout proto.PartitionLayout, identity proto.FilesystemIdentity,
	params Params) error {
	return write(writer, config, layout, identity, params)
}

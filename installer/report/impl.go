package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Cloud-Foundations/metal-installer/lib/format"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

type reporter struct {
	buffer  bytes.Buffer
	failed  *color.Color
	heading *color.Color
	label   *color.Color
	params  Params
}

func newReporter(params Params) *reporter {
	r := &reporter{
		failed:  color.New(color.FgRed, color.Bold),
		heading: color.New(color.FgCyan, color.Bold),
		label:   color.New(color.Bold),
		params:  params,
	}
	for _, c := range []*color.Color{r.failed, r.heading, r.label} {
		if params.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func write(writer io.Writer, config proto.InstallConfig,
	layout proto.PartitionLayout, identity proto.FilesystemIdentity,
	params Params) error {
	r := newReporter(params)
	r.heading.Fprintln(&r.buffer, "Installation summary")
	r.field("Device", config.Device)
	r.field("EFI partition", describePartition(layout.Efi, identity.EfiUuid))
	r.field("Root partition",
		describePartition(layout.Root, identity.RootUuid))
	r.field("Hostname", config.Hostname)
	r.field("Locale", config.Locale)
	r.field("Timezone", config.Timezone)
	r.field("Keymap", config.Keymap)
	user := config.Username
	if len(config.UserGroups) > 0 {
		user += " (" + strings.Join(config.UserGroups, ",") + ")"
	}
	r.field("User", user)
	r.field("Root password", r.password(config.RootPassword))
	r.field("User password", r.password(config.UserPassword))
	if config.AuthorizedKey != "" {
		r.field("SSH key", "installed for "+config.Username)
	}
	if len(params.Results) > 0 {
		r.buffer.WriteByte('\n')
		r.heading.Fprintln(&r.buffer, "Phases")
		for _, result := range params.Results {
			r.result(result)
		}
	}
	if _, err := writer.Write(r.buffer.Bytes()); err != nil {
		return fmt.Errorf("error writing summary: %s", err)
	}
	return nil
}

func describePartition(partition proto.Partition, uuid string) string {
	description := partition.Path + " (" + partition.FileSystemType.String()
	if partition.SizeBytes > 0 {
		description += ", " + format.FormatBytes(partition.SizeBytes)
	}
	description += ")"
	if uuid != "" {
		description += " UUID=" + uuid
	}
	return description
}

func (r *reporter) field(name, value string) {
	r.label.Fprintf(&r.buffer, "  %-15s", name+":")
	fmt.Fprintf(&r.buffer, " %s\n", value)
}

func (r *reporter) password(password string) string {
	if r.params.RevealPasswords {
		return password
	}
	return PasswordMask
}

func (r *reporter) result(result proto.PhaseResult) {
	fmt.Fprintf(&r.buffer, "  %-10s ", result.Phase)
	state := fmt.Sprintf("%-11s", result.State)
	if result.State == proto.PhaseStateFailed {
		r.failed.Fprint(&r.buffer, state)
	} else {
		r.buffer.WriteString(state)
	}
	if result.State == proto.PhaseStateSucceeded ||
		result.State == proto.PhaseStateFailed {
		fmt.Fprintf(&r.buffer, " %s", format.Duration(result.Duration))
	}
	if result.Error != "" {
		fmt.Fprintf(&r.buffer, " %s", result.Error)
	}
	r.buffer.WriteByte('\n')
}

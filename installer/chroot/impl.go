package chroot

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"golang.org/x/crypto/ssh"

	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/installer/mount"
	"github.com/Cloud-Foundations/metal-installer/lib/format"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

func batches(config proto.InstallConfig) ([]Batch, error) {
	user, err := userBatch(config)
	if err != nil {
		return nil, err
	}
	return []Batch{
		localeBatch(config),
		{
			Name:     "root password",
			Commands: []string{setPassword("root", config.RootPassword)},
		},
		user,
		{
			Name: "bootloader",
			Commands: []string{
				shellquote.Join("grub-install",
					"--target="+grubTarget(config.Architecture),
					"--efi-directory=/boot",
					"--bootloader-id="+config.BootloaderId),
				"grub-mkconfig -o /boot/grub/grub.cfg",
			},
		},
	}, nil
}

func grubTarget(architecture string) string {
	switch strings.TrimSuffix(architecture, "-musl") {
	case "aarch64":
		return "arm64-efi"
	case "i686":
		return "i386-efi"
	}
	return "x86_64-efi"
}

func localeBatch(config proto.InstallConfig) Batch {
	var commands []string
	if !strings.HasSuffix(config.Architecture, "-musl") {
		commands = append(commands, "xbps-reconfigure -f glibc-locales")
	}
	commands = append(commands, "xbps-reconfigure -f -a")
	return Batch{Name: "locales", Commands: commands}
}

func run(config proto.InstallConfig, session *mount.Session,
	params Params) error {
	batches, err := batches(config)
	if err != nil {
		return err
	}
	for _, batch := range batches {
		if err := runBatch(session.RootDir, batch, params); err != nil {
			return err
		}
	}
	return nil
}

func runBatch(rootDir string, batch Batch, params Params) error {
	params.Logger.Printf("running chroot batch: %s\n", batch.Name)
	startTime := time.Now()
	err := params.Runner.Run(command.Command{
		Name:  "xchroot",
		Args:  []string{rootDir, "/bin/sh", "-s"},
		Stdin: batch.script(),
	})
	if err != nil {
		return fmt.Errorf("error running chroot batch: %s: %w", batch.Name, err)
	}
	params.Logger.Printf("chroot batch: %s completed in %s\n",
		batch.Name, format.Duration(time.Since(startTime)))
	return nil
}

func (b Batch) script() string {
	return "set -e\n" + strings.Join(b.Commands, "\n") + "\n"
}

// appendLineCommand returns a command which appends line to filename unless
// an identical line is present. A missing final newline is added first.
func appendLineCommand(line, filename string) string {
	quotedLine := shellquote.Join(line)
	quotedFile := shellquote.Join(filename)
	return "grep -qxF -- " + quotedLine + " " + quotedFile +
		" 2>/dev/null || { [ ! -s " + quotedFile + " ] ||" +
		" [ -z \"$(tail -c1 " + quotedFile + ")\" ] || echo >> " +
		quotedFile + "; printf '%s\\n' " + quotedLine + " >> " +
		quotedFile + "; }"
}

func authorizedKeyLine(authorizedKey string) (string, error) {
	publicKey, comment, _, _, err := ssh.ParseAuthorizedKey(
		[]byte(authorizedKey))
	if err != nil {
		return "", fmt.Errorf("error parsing authorized key: %s", err)
	}
	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(publicKey)))
	if comment != "" {
		line += " " + comment
	}
	return line, nil
}

// setPassword returns a command which sets the password for username without
// the password appearing in a process argument list.
func setPassword(username, password string) string {
	return "printf '%s\\n' " + shellquote.Join(username+":"+password) +
		" | chpasswd"
}

func sudoersRuleCommand(filename string) string {
	return appendLineCommand(SudoersRule, filename)
}

func userBatch(config proto.InstallConfig) (Batch, error) {
	username := config.Username
	useradd := []string{"useradd", "-m"}
	if len(config.UserGroups) > 0 {
		useradd = append(useradd, "-G", strings.Join(config.UserGroups, ","))
	}
	if config.UserShell != "" {
		useradd = append(useradd, "-s", config.UserShell)
	}
	useradd = append(useradd, username)
	commands := []string{
		shellquote.Join("id", "-u", username) + " >/dev/null 2>&1 || " +
			shellquote.Join(useradd...),
		setPassword(username, config.UserPassword),
		sudoersRuleCommand(SudoersFile),
	}
	if config.AuthorizedKey != "" {
		line, err := authorizedKeyLine(config.AuthorizedKey)
		if err != nil {
			return Batch{}, err
		}
		sshDir := path.Join("/home", username, ".ssh")
		keysFile := path.Join(sshDir, "authorized_keys")
		commands = append(commands,
			shellquote.Join("install", "-d", "-m", "700", "-o", username,
				"-g", username, sshDir),
			appendLineCommand(line, keysFile),
			shellquote.Join("chown", username+":"+username, keysFile),
			shellquote.Join("chmod", "600", keysFile))
	}
	return Batch{Name: "user " + username, Commands: commands}, nil
}

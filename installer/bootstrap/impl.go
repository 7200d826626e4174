package bootstrap

import (
	"os"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/Cloud-Foundations/metal-installer/installer/command"
	"github.com/Cloud-Foundations/metal-installer/installer/mount"
	"github.com/Cloud-Foundations/metal-installer/lib/constants"
	"github.com/Cloud-Foundations/metal-installer/lib/format"
	"github.com/Cloud-Foundations/metal-installer/lib/fsutil"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

const basePackage = "base-system"

func bootstrap(config proto.InstallConfig, session *mount.Session,
	params Params) error {
	params.prepare()
	if err := copyKeys(session.RootDir, params); err != nil {
		params.Logger.Printf("error copying xbps keys, continuing: %s\n", err)
	}
	steps := []struct {
		description string
		args        []string
	}{
		{"install " + basePackage, []string{"-S", "-y", basePackage}},
		{"update xbps", []string{"-S", "-u", "-y", "xbps"}},
		{"update base system", []string{"-u", "-y"}},
	}
	for _, step := range steps {
		startTime := time.Now()
		err := params.Runner.Run(
			xbpsInstall(config, session.RootDir, step.args...))
		if err != nil {
			return err
		}
		params.Logger.Printf("%s: completed in %s\n",
			step.description, format.Duration(time.Since(startTime)))
	}
	return nil
}

func copyKeys(rootDir string, params Params) error {
	if _, err := os.Stat(params.KeysDirectory); err != nil {
		return err
	}
	destDir, err := securejoin.SecureJoin(rootDir, constants.XbpsKeysDirectory)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(destDir, fsutil.DirPerms); err != nil {
		return err
	}
	if err := fsutil.CopyTree(destDir, params.KeysDirectory); err != nil {
		return err
	}
	params.Logger.Debugf(0, "copied xbps keys to: %s\n", destDir)
	return nil
}

func installPackages(config proto.InstallConfig, session *mount.Session,
	params Params) error {
	if len(config.Packages) < 1 {
		params.Logger.Println("no extra packages to install")
		return nil
	}
	args := append([]string{"-S", "-y"}, config.Packages...)
	startTime := time.Now()
	if err := params.Runner.Run(
		xbpsInstall(config, session.RootDir, args...)); err != nil {
		return err
	}
	params.Logger.Printf("installed %d packages in %s\n",
		len(config.Packages), format.Duration(time.Since(startTime)))
	return nil
}

func xbpsInstall(config proto.InstallConfig, rootDir string,
	args ...string) command.Command {
	cmdArgs := make([]string, 0, len(args)+4)
	cmdArgs = append(cmdArgs, args[:countFlags(args)]...)
	cmdArgs = append(cmdArgs, "-r", rootDir, "-R", config.Repository)
	cmdArgs = append(cmdArgs, args[countFlags(args):]...)
	return command.Command{
		Name: "xbps-install",
		Args: cmdArgs,
		Env:  []string{"XBPS_ARCH=" + config.Architecture},
	}
}

// countFlags returns the number of leading arguments which are flags.
func countFlags(args []string) int {
	for index, arg := range args {
		if len(arg) < 1 || arg[0] != '-' {
			return index
		}
	}
	return len(args)
}

func (p *Params) prepare() {
	if p.KeysDirectory == "" {
		p.KeysDirectory = constants.XbpsKeysDirectory
	}
}

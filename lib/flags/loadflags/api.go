package loadflags

import (
	"flag"
	"path/filepath"
)

// LoadForDaemon will load flag values for progName from
// /etc/<progName>/flags.default and then /etc/<progName>/flags.extra, into
// flag.CommandLine. Missing files are ignored.
func LoadForDaemon(progName string) error {
	return loadFlags(flag.CommandLine, filepath.Join("/etc", progName))
}

// LoadFromDirectory is similar to LoadForDaemon, except that the directory
// and FlagSet are specified.
func LoadFromDirectory(flagSet *flag.FlagSet, dirname string) error {
	return loadFlags(flagSet, dirname)
}

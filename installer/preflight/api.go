package preflight

import (
	"net"
	"time"

	"github.com/Cloud-Foundations/metal-installer/installer/prompt"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
	"github.com/Cloud-Foundations/metal-installer/lib/retry"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

// NetworkProber checks that host can be reached.
type NetworkProber interface {
	Probe(host string) error
}

type Params struct {
	Euid           func() int // Default: unix.Geteuid.
	Logger         log.DebugLogger
	Prober         NetworkProber
	Prompter       prompt.Prompter
	Retry          retry.Params // Default: 3 tries with exponential back-off.
	SysfsDirectory string       // Default: /sys.
}

type ProbeOptions struct {
	ResolvConf string        // Default: /etc/resolv.conf.
	Timeout    time.Duration // Per query and per echo. Default: 3 seconds.
}

// Check verifies that the installer runs as root, that the machine booted in
// UEFI mode and that config.ConnectivityHost is reachable. The first two are
// hard requirements. If the network probe fails, the operator is asked
// whether to continue; declining yields an *errors.AbortedError.
func Check(config proto.InstallConfig, params Params) error {
	return check(config, params)
}

// NewNetworkProber returns a NetworkProber which requires a default IPv4
// route, resolves the host using the name servers listed in the resolver
// configuration and then sends an ICMP echo request to the first address.
func NewNetworkProber(options ProbeOptions,
	logger log.DebugLogger) NetworkProber {
	return newNetworkProber(options, logger)
}

// Resolve looks up the IPv4 addresses of host by querying servers (each a
// host:port) in turn.
func Resolve(host string, servers []string,
	timeout time.Duration) ([]net.IP, error) {
	return resolve(host, servers, timeout)
}

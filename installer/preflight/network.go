package preflight

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/miekg/dns"
	"github.com/vishvananda/netlink"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"

	"github.com/Cloud-Foundations/metal-installer/lib/constants"
	installerErrors "github.com/Cloud-Foundations/metal-installer/lib/errors"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
)

const protocolICMP = 1

type networkProber struct {
	logger     log.DebugLogger
	resolvConf string
	timeout    time.Duration
}

func newNetworkProber(options ProbeOptions,
	logger log.DebugLogger) *networkProber {
	if options.ResolvConf == "" {
		options.ResolvConf = constants.ResolvConfFile
	}
	if options.Timeout <= 0 {
		options.Timeout = 3 * time.Second
	}
	return &networkProber{
		logger:     logger,
		resolvConf: options.ResolvConf,
		timeout:    options.Timeout,
	}
}

func (p *networkProber) Probe(host string) error {
	routes, err := netlink.RouteList(nil, netlink.FAMILY_V4)
	if err != nil {
		return fmt.Errorf("error listing routes: %s", err)
	}
	if !hasDefaultRoute(routes) {
		return installerErrors.NewUnavailableError("network",
			"no default IPv4 route")
	}
	p.logger.Debugln(1, "found default route")
	var addrs []net.IP
	if ip := net.ParseIP(host); ip != nil {
		addrs = []net.IP{ip}
	} else {
		clientConfig, err := dns.ClientConfigFromFile(p.resolvConf)
		if err != nil {
			return fmt.Errorf("error reading resolver configuration: %s", err)
		}
		servers := make([]string, 0, len(clientConfig.Servers))
		for _, server := range clientConfig.Servers {
			servers = append(servers,
				net.JoinHostPort(server, clientConfig.Port))
		}
		if addrs, err = resolve(host, servers, p.timeout); err != nil {
			return err
		}
	}
	p.logger.Debugf(1, "resolved: %s to: %v\n", host, addrs)
	if err := ping(addrs[0], p.timeout); err != nil {
		return installerErrors.NewUnavailableError("network",
			fmt.Sprintf("no echo reply from: %s: %s", addrs[0], err))
	}
	return nil
}

func addressesFromAnswer(msg *dns.Msg) []net.IP {
	var addrs []net.IP
	for _, rr := range msg.Answer {
		if a, ok := rr.(*dns.A); ok {
			addrs = append(addrs, a.A)
		}
	}
	return addrs
}

func hasDefaultRoute(routes []netlink.Route) bool {
	for _, route := range routes {
		if route.Dst == nil {
			return true
		}
		if ones, _ := route.Dst.Mask.Size(); ones == 0 &&
			route.Dst.IP.IsUnspecified() {
			return true
		}
	}
	return false
}

func ping(ip net.IP, timeout time.Duration) error {
	conn, err := icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return err
	}
	defer conn.Close()
	id := os.Getpid() & 0xffff
	request := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{ID: id, Seq: 1, Data: []byte("metal-installer")},
	}
	data, err := request.Marshal(nil)
	if err != nil {
		return err
	}
	if _, err := conn.WriteTo(data, &net.IPAddr{IP: ip}); err != nil {
		return err
	}
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	buffer := make([]byte, 1500)
	for {
		nRead, peer, err := conn.ReadFrom(buffer)
		if err != nil {
			return err
		}
		reply, err := icmp.ParseMessage(protocolICMP, buffer[:nRead])
		if err != nil {
			continue
		}
		if reply.Type != ipv4.ICMPTypeEchoReply {
			continue
		}
		if echo, ok := reply.Body.(*icmp.Echo); ok && echo.ID == id {
			if ipAddr, ok := peer.(*net.IPAddr); ok && ipAddr.IP.Equal(ip) {
				return nil
			}
		}
	}
}

func resolve(host string, servers []string,
	timeout time.Duration) ([]net.IP, error) {
	if len(servers) < 1 {
		return nil, installerErrors.NewUnavailableError("DNS",
			"no name servers configured")
	}
	client := &dns.Client{Timeout: timeout}
	msg := &dns.Msg{}
	msg.SetQuestion(dns.Fqdn(host), dns.TypeA)
	var lastErr error
	for _, server := range servers {
		response, _, err := client.Exchange(msg, server)
		if err != nil {
			lastErr = err
			continue
		}
		if response.Rcode != dns.RcodeSuccess {
			lastErr = fmt.Errorf("%s: %s",
				server, dns.RcodeToString[response.Rcode])
			continue
		}
		if addrs := addressesFromAnswer(response); len(addrs) > 0 {
			return addrs, nil
		}
		lastErr = errors.New(server + ": no A records")
	}
	return nil, installerErrors.NewUnavailableError("DNS",
		fmt.Sprintf("cannot resolve: %s: %s", host, lastErr))
}

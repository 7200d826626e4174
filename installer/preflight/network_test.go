package preflight

import (
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/vishvananda/netlink"
)

func startNameServer(t *testing.T) string {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	handler := func(w dns.ResponseWriter, request *dns.Msg) {
		response := &dns.Msg{}
		response.SetReply(request)
		if request.Question[0].Name == "repo.example.org." {
			rr, err := dns.NewRR("repo.example.org. 60 IN A 192.0.2.10")
			if err != nil {
				t.Error(err)
			} else {
				response.Answer = append(response.Answer, rr)
			}
		} else {
			response.Rcode = dns.RcodeNameError
		}
		w.WriteMsg(response)
	}
	started := make(chan struct{})
	server := &dns.Server{
		PacketConn:        conn,
		Handler:           dns.HandlerFunc(handler),
		NotifyStartedFunc: func() { close(started) },
	}
	go server.ActivateAndServe()
	<-started
	t.Cleanup(func() { server.Shutdown() })
	return conn.LocalAddr().String()
}

func TestResolve(t *testing.T) {
	server := startNameServer(t)
	addrs, err := Resolve("repo.example.org", []string{server}, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if len(addrs) != 1 || !addrs[0].Equal(net.IPv4(192, 0, 2, 10)) {
		t.Errorf("unexpected addresses: %v", addrs)
	}
	if _, err := Resolve("missing.example.org", []string{server},
		time.Second); err == nil {
		t.Error("no error for missing name")
	}
	if _, err := Resolve("repo.example.org", nil, time.Second); err == nil {
		t.Error("no error without name servers")
	}
}

func TestHasDefaultRoute(t *testing.T) {
	_, lan, _ := net.ParseCIDR("192.168.1.0/24")
	_, everything, _ := net.ParseCIDR("0.0.0.0/0")
	tests := []struct {
		routes   []netlink.Route
		expected bool
	}{
		{nil, false},
		{[]netlink.Route{{Dst: lan}}, false},
		{[]netlink.Route{{Dst: lan}, {Dst: nil}}, true},
		{[]netlink.Route{{Dst: everything}}, true},
	}
	for index, test := range tests {
		if result := hasDefaultRoute(test.routes); result != test.expected {
			t.Errorf("test %d: expected: %v got: %v",
				index, test.expected, result)
		}
	}
}

package presence

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"math"
	"net"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	fastping "github.com/tatsushid/go-fastping"
)

// Checker probes LAN addresses for a device that is switched on.
type Checker interface {
	// Alive reports whether any of addrs answered.
	Alive(ctx context.Context, addrs []string) (bool, error)
}

// Runner runs a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Pinger shells out to the system ping utility, one address at a time, and
// looks for a reply line in its output.
type Pinger struct {
	Timeout time.Duration
	run     Runner
}

const replyMarker = "bytes from"

func NewPinger(timeout time.Duration) *Pinger {
	return &Pinger{Timeout: timeout, run: execRunner}
}

func (p *Pinger) args(addr string) []string {
	secs := int(math.Ceil(p.Timeout.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return []string{"-c1", "-W", fmt.Sprint(secs), addr}
}

func (p *Pinger) Alive(ctx context.Context, addrs []string) (bool, error) {
	for _, addr := range addrs {
		out, err := p.run(ctx, "ping", p.args(addr)...)
		// a ping killed by the deadline says nothing about the host
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, errors.Wrapf(ctxErr, "ping %s", addr)
		}
		if err != nil {
			// ping exits non-zero when the host does not answer
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				return false, errors.Wrapf(err, "ping %s", addr)
			}
		}
		if hasReply(out) {
			log.Printf("%s answered ping", addr)
			return true, nil
		}
	}
	return false, nil
}

func hasReply(out []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), replyMarker) {
			return true
		}
	}
	return false
}

// ICMP sends echo requests to every address at once. It needs raw socket
// privileges unless Network is "udp".
type ICMP struct {
	Timeout time.Duration
	Network string
}

func NewICMP(timeout time.Duration) *ICMP {
	return &ICMP{Timeout: timeout, Network: "ip"}
}

func (c *ICMP) Alive(ctx context.Context, addrs []string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p := fastping.NewPinger()
	if _, err := p.Network(c.Network); err != nil {
		return false, err
	}
	resolved := 0
	for _, addr := range addrs {
		ra, err := net.ResolveIPAddr("ip4:icmp", addr)
		if err != nil {
			log.Printf("Failed to resolve %s, not pinging: %s", addr, err)
			continue
		}
		p.AddIPAddr(ra)
		resolved++
	}
	if resolved == 0 {
		return false, nil
	}

	var mu sync.Mutex
	alive := false
	p.MaxRTT = c.Timeout
	p.OnRecv = func(addr *net.IPAddr, rtt time.Duration) {
		log.Printf("%s answered ping in %s", addr, rtt)
		mu.Lock()
		alive = true
		mu.Unlock()
	}
	p.OnIdle = func() {}
	if err := p.Run(); err != nil {
		return false, errors.Wrap(err, "icmp ping")
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	mu.Lock()
	defer mu.Unlock()
	return alive, nil
}

// NewChecker builds the checker for a configured method name.
func NewChecker(method string, timeout time.Duration) (Checker, error) {
	switch method {
	case "", "ping":
		return NewPinger(timeout), nil
	case "icmp":
		return NewICMP(timeout), nil
	}
	return nil, fmt.Errorf("unknown presence method: %s", method)
}

package presence

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	reply = `PING 192.168.1.20 (192.168.1.20) 56(84) bytes of data.
64 bytes from 192.168.1.20: icmp_seq=1 ttl=64 time=3.12 ms

--- 192.168.1.20 ping statistics ---
1 packets transmitted, 1 received, 0% packet loss, time 0ms
`
	noReply = `PING 192.168.1.21 (192.168.1.21) 56(84) bytes of data.

--- 192.168.1.21 ping statistics ---
1 packets transmitted, 0 received, 100% packet loss, time 0ms
`
)

func exitError(t *testing.T) error {
	// a real *exec.ExitError, as ping returns for an unanswered request
	err := exec.Command("false").Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Skip("false(1) not available")
	}
	return err
}

func fakePing(outputs map[string]string, err error, calls *[][]string) Runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, append([]string{name}, args...))
		addr := args[len(args)-1]
		if out, ok := outputs[addr]; ok {
			if out == noReply {
				return []byte(out), err
			}
			return []byte(out), nil
		}
		return []byte(noReply), err
	}
}

func TestPingerReachable(t *testing.T) {
	var calls [][]string
	p := NewPinger(2 * time.Second)
	p.run = fakePing(map[string]string{"192.168.1.20": reply}, exitError(t), &calls)

	alive, err := p.Alive(context.Background(), []string{"192.168.1.21", "192.168.1.20", "192.168.1.22"})
	assert.NoError(t, err)
	assert.True(t, alive)
	// stops at the first address that answers
	assert.Len(t, calls, 2)
	assert.Equal(t, []string{"ping", "-c1", "-W", "2", "192.168.1.21"}, calls[0])
}

func TestPingerUnreachable(t *testing.T) {
	var calls [][]string
	p := NewPinger(500 * time.Millisecond)
	p.run = fakePing(nil, exitError(t), &calls)

	alive, err := p.Alive(context.Background(), []string{"192.168.1.21", "192.168.1.22"})
	assert.NoError(t, err)
	assert.False(t, alive)
	assert.Len(t, calls, 2)
	assert.Equal(t, "1", calls[0][3])
}

func TestPingerMissingBinary(t *testing.T) {
	var calls [][]string
	p := NewPinger(time.Second)
	p.run = fakePing(nil, exec.ErrNotFound, &calls)

	_, err := p.Alive(context.Background(), []string{"192.168.1.21"})
	assert.Error(t, err)
}

func TestNewChecker(t *testing.T) {
	c, err := NewChecker("ping", time.Second)
	assert.NoError(t, err)
	assert.IsType(t, &Pinger{}, c)

	c, err = NewChecker("icmp", time.Second)
	assert.NoError(t, err)
	assert.IsType(t, &ICMP{}, c)

	_, err = NewChecker("arp", time.Second)
	assert.Error(t, err)
}

func TestICMPCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewICMP(time.Second).Alive(ctx, []string{"127.0.0.1"})
	assert.Error(t, err)
}

func TestPingerDeadline(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep(1) not available")
	}
	p := NewPinger(time.Second)
	// a ping that hangs until the run's deadline kills it
	p.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return execRunner(ctx, "sleep", "5")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	alive, err := p.Alive(ctx, []string{"192.168.1.21"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, alive)

	d := NewDetector(GuardWindow{1, 7}, []string{"192.168.1.21"}, p)
	d.Now = at(12)
	_, err = d.SystemActive(ctx)
	assert.Error(t, err)
}

// Package graphite writes metrics using the carbon plaintext protocol.
package graphite

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

const DefaultPort = "2003"

type IGraphite interface {
	Add(path string, timestamp int64, value float64)
	Flush() error
}

type Graphite struct {
	addr   string
	prefix string
	lines  []string
}

var dialer = func(network, address string) (io.WriteCloser, error) {
	return net.DialTimeout(network, address, 5*time.Second)
}

// New creates a client for host or host:port. Paths are put under prefix.
func New(host, prefix string) *Graphite {
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, DefaultPort)
	}
	return &Graphite{addr: host, prefix: strings.Trim(prefix, ".")}
}

func (graphite *Graphite) Add(path string, timestamp int64, value float64) {
	if graphite.prefix != "" {
		path = graphite.prefix + "." + path
	}
	graphite.lines = append(graphite.lines, fmt.Sprintf("%s %v %d\n", path, value, timestamp))
}

// Flush sends everything added so far in a single connection.
func (graphite *Graphite) Flush() error {
	if len(graphite.lines) == 0 {
		return nil
	}
	conn, err := dialer("tcp", graphite.addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	if _, err := io.WriteString(conn, strings.Join(graphite.lines, "")); err != nil {
		return err
	}
	graphite.lines = nil
	return nil
}

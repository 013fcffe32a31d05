// Package udp forwards accepted sentences to a UDP listener, the usual way
// NMEA 0183 is fanned out to chart plotters on a LAN.
package udp

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"nmeastream/internal/nmea"
)

type udpConn interface {
	Write(p []byte) (int, error)
	Close() error
}

type resolveFunc func(network, address string) (*net.UDPAddr, error)
type dialFunc func(network string, laddr, raddr *net.UDPAddr) (udpConn, error)

// Forwarder writes one datagram per sentence, framed as "$body\r\n".
type Forwarder struct {
	dest string

	mu   sync.Mutex
	conn udpConn
}

func NewForwarder(dest string) (*Forwarder, error) {
	return newForwarder(dest, net.ResolveUDPAddr, func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		return net.DialUDP(network, laddr, raddr)
	})
}

func newForwarder(dest string, resolve resolveFunc, dial dialFunc) (*Forwarder, error) {
	addr, err := resolve("udp", dest)
	if err != nil {
		return nil, fmt.Errorf("resolve dest: %w", err)
	}
	// DialUDP selects a suitable local address automatically.
	conn, err := dial("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial udp: %w", err)
	}
	return &Forwarder{dest: dest, conn: conn}, nil
}

// Dest returns the configured destination.
func (f *Forwarder) Dest() string { return f.dest }

// RecordSentence implements ingest.Sink.
func (f *Forwarder) RecordSentence(_ context.Context, rec nmea.Record, _ time.Time) error {
	if rec == nil {
		return nil
	}
	return f.Send(rec.RawText())
}

// Send writes raw as a single framed sentence. Empty input is ignored.
func (f *Forwarder) Send(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if !strings.HasPrefix(raw, "$") {
		raw = "$" + raw
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn == nil {
		return fmt.Errorf("udp forwarder closed")
	}
	_, err := f.conn.Write([]byte(raw + "\r\n"))
	return err
}

func (f *Forwarder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn == nil {
		return nil
	}
	err := f.conn.Close()
	f.conn = nil
	return err
}

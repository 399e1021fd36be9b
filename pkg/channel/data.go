/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: data.go
Description: Data channel for the SatTest harness. A unidirectional one-shot
byte relay between two collaborator processes: the inbound side accepts a
single connection and reads one frame within a fixed byte budget, the
outbound side dials once, writes the full buffer, and closes. No chunk
framing, no length prefix, no retransmission.
*/

package channel

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/sirupsen/logrus"
)

// MaxFrameSize is the byte budget of the inbound data channel. Larger frames
// are silently truncated; this is a known limitation of the collaborator
// boundary, not an error.
const MaxFrameSize = 1024

// ReceiveFrame accepts exactly one inbound data connection on addr and
// returns the received bytes, truncated to MaxFrameSize. The listener is
// closed before returning on every path; cancelling ctx unblocks a pending
// accept.
func ReceiveFrame(ctx context.Context, addr string, logger *logrus.Logger) ([]byte, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind data address %s: %w", addr, err)
	}
	defer ln.Close()

	// Shut the listener down when the context expires so Accept unblocks.
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	logger.WithField("addr", ln.Addr().String()).Info("Waiting for inbound frame")

	conn, err := ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to accept data connection: %w", err)
	}
	defer conn.Close()

	data, err := io.ReadAll(io.LimitReader(conn, MaxFrameSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read frame data: %w", err)
	}
	if len(data) > MaxFrameSize {
		logger.WithFields(logrus.Fields{
			"budget": MaxFrameSize,
		}).Warning("Inbound frame exceeds byte budget, truncating")
		data = data[:MaxFrameSize]
	}

	logger.WithField("bytes", len(data)).Info("Frame received")
	return data, nil
}

// SendFrame opens one outbound data connection, writes the full buffer, and
// closes.
func SendFrame(addr string, data []byte) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to data endpoint %s: %w", addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("failed to send frame to %s: %w", addr, err)
	}
	return nil
}

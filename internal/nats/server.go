// Package nats runs the embedded, in-process NATS server that backs the
// session journal. Nothing listens on the network and the JetStream stream
// lives in memory, so the journal never outlives the process.
package nats

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mirrorbook/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// StartEmbedded starts an embedded NATS server with JetStream enabled.
// JetStream insists on a store directory even for memory streams, so a
// scratch directory under dataDir (or the system temp dir) is created.
func StartEmbedded(dataDir string) (*server.Server, string, error) {
	storeDir, err := os.MkdirTemp(dataDir, "mirrorbook-js-")
	if err != nil {
		return nil, "", fmt.Errorf("creating jetstream dir: %w", err)
	}
	logger.Debug("starting embedded NATS server (store %s)", storeDir)

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   storeDir,
		DontListen: true,
		NoSigs:     true,
	})
	if err != nil {
		os.RemoveAll(storeDir)
		return nil, "", fmt.Errorf("creating nats server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(4 * time.Second) {
		ns.Shutdown()
		os.RemoveAll(storeDir)
		return nil, "", errors.New("nats server failed to start within 4s")
	}

	logger.Debug("NATS server ready for connections")
	return ns, storeDir, nil
}

// ConnectInProcess connects to ns without using a network port.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	conn, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		return nil, fmt.Errorf("connecting in-process: %w", err)
	}
	return conn, nil
}

// CreateJetStream creates a JetStream context from a connection.
func CreateJetStream(nc *nats.Conn) (jetstream.JetStream, error) {
	return jetstream.New(nc)
}

// Shutdown drains the connection, then stops the server. Both steps are
// bounded so a stuck server cannot hang the caller.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	if nc != nil {
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- nc.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				nc.Close()
			}
		case <-time.After(2 * time.Second):
			logger.Warn("NATS drain timed out after 2s, forcing close")
			nc.Close()
		}
	}

	if ns != nil {
		ns.Shutdown()

		shutdownDone := make(chan struct{})
		go func() {
			ns.WaitForShutdown()
			close(shutdownDone)
		}()

		select {
		case <-shutdownDone:
		case <-time.After(5 * time.Second):
			return errors.New("nats server shutdown timed out")
		}
	}

	logger.Debug("NATS shutdown complete")
	return nil
}

// Bus bundles a running embedded server, its connection and the journal
// stream.
type Bus struct {
	Server *server.Server
	Conn   *nats.Conn
	JS     jetstream.JetStream
	Stream jetstream.Stream

	storeDir string
}

// Open starts the server and sets up the journal stream.
func Open(ctx context.Context, dataDir string) (*Bus, error) {
	ns, storeDir, err := StartEmbedded(dataDir)
	if err != nil {
		return nil, err
	}
	b := &Bus{Server: ns, storeDir: storeDir}

	if b.Conn, err = ConnectInProcess(ns); err != nil {
		b.Close()
		return nil, err
	}
	if b.JS, err = CreateJetStream(b.Conn); err != nil {
		b.Close()
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}
	if b.Stream, err = SetupStream(ctx, b.JS); err != nil {
		b.Close()
		return nil, fmt.Errorf("setting up stream: %w", err)
	}
	return b, nil
}

// Close shuts everything down and removes the scratch directory.
func (b *Bus) Close() error {
	err := Shutdown(b.Conn, b.Server)
	if b.storeDir != "" {
		os.RemoveAll(b.storeDir)
	}
	return err
}

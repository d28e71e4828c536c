// Package helpers contains small utilities shared by CLI commands.
package helpers

import (
	"context"
	"fmt"
	"net"
	"strconv"
)

// EnsurePortAvailable verifies the server address can be bound before the
// server itself tries to, so a busy port fails fast with a clear message
// instead of surfacing mid-startup.
func EnsurePortAvailable(ctx context.Context, host string, port int) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", formatAddress(host, port))
	if err != nil {
		return fmt.Errorf("port %d is not available on host %q: %w", port, host, err)
	}
	return listener.Close()
}

// formatAddress joins host and port, bracketing IPv6 literals.
func formatAddress(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

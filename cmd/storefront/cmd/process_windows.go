//go:build windows

package cmd

import "os"

// gracefulSignals returns the signals that trigger a graceful shutdown.
func gracefulSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

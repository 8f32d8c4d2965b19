// Package transport provides the serial byte transport used by
// hardware-bound gesture actions.
package transport

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.bug.st/serial"
)

var (
	// ErrWriteFailed marks a transport-level write failure. Dispatch treats
	// it as permanent and disables further serial actions.
	ErrWriteFailed = errors.New("transport write failed")

	// ErrNotOpen is returned when no serial port is open.
	ErrNotOpen = errors.New("transport not open")

	// ErrNoPorts is returned by Detect when no serial ports exist.
	ErrNoPorts = errors.New("no serial ports found")
)

// Port defines the minimal interface needed for a byte transport.
type Port interface {
	io.Writer
	io.Closer
}

// Open opens the named serial port in 8N1 mode at the given baud rate.
func Open(name string, baud int) (Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	return port, nil
}

// Detect returns the name of the most likely device port: USB serial
// adapters first, then the first port the system reports.
func Detect() (string, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return "", fmt.Errorf("list serial ports: %w", err)
	}

	name := choosePort(names)
	if name == "" {
		return "", ErrNoPorts
	}
	return name, nil
}

func choosePort(names []string) string {
	if len(names) == 0 {
		return ""
	}

	preferred := []string{"ttyUSB", "ttyACM", "usbserial", "usbmodem"}
	for _, want := range preferred {
		for _, name := range names {
			if strings.Contains(name, want) {
				return name
			}
		}
	}
	return names[0]
}

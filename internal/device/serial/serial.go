// Package serial adapts a physical serial port to the device.Transport
// capability.
package serial

import (
	"context"
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/goldvault/goldvault/internal/device"
)

// readTimeout bounds each port read so the reader's loop can observe
// cancellation between reads.
const readTimeout = 200 * time.Millisecond

// Transport opens a named serial port.
type Transport struct {
	PortName string
}

var _ device.Transport = Transport{}

// Open opens the port at the requested baud rate, 8N1.
func (t Transport) Open(_ context.Context, baudRate int) (device.Conn, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(t.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s at %d baud: %w", t.PortName, baudRate, err)
	}

	if err := port.SetReadTimeout(readTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", t.PortName, err)
	}

	return port, nil
}

// ListPorts enumerates the serial port names visible on this host, for the
// caller's device picker.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

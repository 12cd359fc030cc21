package scale

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Open connects to the scale's serial port. The ESP32 board resets when the
// port opens and needs a moment before it streams, hence the settle delay.
func Open(port string, baud int) (io.ReadCloser, error) {
	p, err := serial.Open(port, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("scale port %s could not be opened: %w", port, err)
	}
	time.Sleep(2 * time.Second)
	return p, nil
}

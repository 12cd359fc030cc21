package printer

import (
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"
)

// Printer emits a finalized receipt. A failure here is reported to the
// cashier as a warning; it never rolls back the sale that produced it.
type Printer interface {
	Print(Receipt) error
}

// Device writes raw ESC/POS bytes to the configured address: "tcp:host:port"
// for a network printer, anything else is treated as a character device path
// (ex: /dev/usb/lp0). The connection is opened per print and closed right
// after, nothing is held across user think-time.
type Device struct {
	Addr string
}

func (d *Device) Print(r Receipt) error {
	raw, err := Format(r)
	if err != nil {
		return err
	}

	if hostport, ok := strings.CutPrefix(d.Addr, "tcp:"); ok {
		conn, err := net.DialTimeout("tcp", hostport, 5*time.Second)
		if err != nil {
			return fmt.Errorf("printer at %s unreachable: %w", hostport, err)
		}
		defer conn.Close()
		if _, err := conn.Write(raw); err != nil {
			return fmt.Errorf("printer write failed: %w", err)
		}
		return nil
	}

	f, err := os.OpenFile(d.Addr, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer device %s could not be opened: %w", d.Addr, err)
	}
	defer f.Close()
	if _, err := f.Write(raw); err != nil {
		return fmt.Errorf("printer write failed: %w", err)
	}
	return nil
}

// Disabled stands in when no printer is configured; sales still complete.
type Disabled struct{}

func (Disabled) Print(Receipt) error {
	log.Println("No printer configured, receipt skipped")
	return nil
}

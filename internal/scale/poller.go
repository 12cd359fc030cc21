package scale

import (
	"bufio"
	"io"
	"log"
	"time"
)

// Poller consumes newline-delimited scale output and publishes every valid
// sample to its cell. It has no stop switch: it runs until the stream ends
// or errors, which in practice means until process exit.
type Poller struct {
	Cell     *Cell
	Interval time.Duration // pacing between reads; defaults to 100ms
}

// Run reads one line per interval. Lines that do not parse are skipped
// without a trace. A dead stream is logged once and Run returns, so a scale
// outage never takes the sales path down with it.
func (p *Poller) Run(stream io.ReadCloser) {
	defer stream.Close()

	interval := p.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	scanner := bufio.NewScanner(stream)
	for scanner.Scan() {
		if grams, ok := ParseLine(scanner.Text()); ok {
			p.Cell.Set(grams)
		}
		time.Sleep(interval)
	}
	if err := scanner.Err(); err != nil {
		log.Printf("Scale stream ended: %v", err)
		return
	}
	log.Println("Scale stream closed")
}

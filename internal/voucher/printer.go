package voucher

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const (
	defaultPrinterPort = "9100"
	dialTimeout        = 5 * time.Second
	writeTimeout       = 10 * time.Second

	// escposPC858 is the ESC t page number of PC858 (Latin-1 plus euro) on
	// Epson-compatible printers.
	escposPC858 = 19
)

// Printer sends a rendered ticket to a physical device.
type Printer interface {
	Name() string
	Print(ctx context.Context, data []byte) error
}

// NetworkPrinter is a raw TCP (JetDirect) receipt printer.
type NetworkPrinter struct {
	address string
	mu      sync.Mutex
}

// NewNetworkPrinter builds a printer for host or host:port. Port 9100 is used
// when none is given.
func NewNetworkPrinter(address string) *NetworkPrinter {
	addr := strings.TrimSpace(address)
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, defaultPrinterPort)
	}
	return &NetworkPrinter{address: addr}
}

// Name returns the printer address.
func (p *NetworkPrinter) Name() string {
	return p.address
}

// Print sends data to the printer.
func (p *NetworkPrinter) Print(ctx context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return errors.Wrap(err, "connect to printer")
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := conn.Write(data); err != nil {
		return errors.Wrap(err, "send data to printer")
	}
	return nil
}

// ESCPOS encodes the ticket for an ESC/POS thermal printer. Text is sent in
// code page PC858; characters it lacks print as "?".
func (v Voucher) ESCPOS() []byte {
	var data []byte
	lines := v.Lines()
	enc := encoding.ReplaceUnsupported(charmap.CodePage858.NewEncoder())
	text := func(s string) []byte {
		out, err := enc.Bytes([]byte(s))
		if err != nil {
			return []byte(s)
		}
		return out
	}

	data = append(data, 0x1B, 0x40)              // ESC @ init
	data = append(data, 0x1B, 0x74, escposPC858) // ESC t n code page
	data = append(data, 0x1B, 0x61, 0x01)        // ESC a 1 center
	data = append(data, 0x1B, 0x45, 0x01)        // ESC E 1 bold
	data = append(data, text(strings.TrimSpace(lines[0])+"\n")...)
	data = append(data, 0x1B, 0x45, 0x00) // ESC E 0
	data = append(data, text(strings.TrimSpace(lines[1])+"\n")...)
	data = append(data, 0x1B, 0x61, 0x00) // ESC a 0 left

	for _, line := range lines[2 : len(lines)-1] {
		data = append(data, text(line+"\n")...)
	}

	data = append(data, 0x1B, 0x61, 0x01)
	data = append(data, text(strings.TrimSpace(lines[len(lines)-1])+"\n\n\n")...)
	data = append(data, 0x1D, 0x56, 0x41, 0x03) // GS V A partial cut
	return data
}

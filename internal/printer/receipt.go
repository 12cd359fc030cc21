package printer

import (
	"bytes"
	"fmt"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// ESC/POS control sequences used by the receipt layout.
var (
	escInit     = []byte{0x1b, '@'}
	alignCenter = []byte{0x1b, 'a', 0x01}
	alignLeft   = []byte{0x1b, 'a', 0x00}
	fullCut     = []byte{0x1d, 'V', 0x00}
)

const separator = "------------------------------\n"

type Item struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// Receipt is the finalized cart handed over after a committed sale.
type Receipt struct {
	Time  time.Time
	Items []Item
	Total float64
}

// Format renders the raw ESC/POS byte stream the thermal printer expects:
// cp850 text, centered total and footer, full cut at the end.
func Format(r Receipt) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(escInit)

	header := "      MERCADO PAI E FILHO      \n" +
		"Rua Santa Luzia, 09\n" +
		r.Time.Format("02/01/2006 15:04:05") + "\n" +
		separator +
		"Itens:\n"
	if err := writeText(&buf, header); err != nil {
		return nil, err
	}

	for _, it := range r.Items {
		name := it.Name
		// 17 columns for the name; longer ones lose their tail.
		if runes := []rune(name); len(runes) > 17 {
			name = string(runes[:15]) + ".."
		}
		line := fmt.Sprintf("%-17s %3d x %6.2f = %7.2f\n",
			name, it.Quantity, it.UnitPrice, it.UnitPrice*float64(it.Quantity))
		if err := writeText(&buf, line); err != nil {
			return nil, err
		}
	}

	if err := writeText(&buf, separator); err != nil {
		return nil, err
	}

	buf.Write(alignCenter)
	if err := writeText(&buf, fmt.Sprintf("TOTAL: R$ %.2f\n", r.Total)); err != nil {
		return nil, err
	}
	if err := writeText(&buf, "\nObrigado pela sua compra!\nVolte sempre!\n\n"); err != nil {
		return nil, err
	}
	buf.Write(alignLeft)

	buf.Write(fullCut)
	return buf.Bytes(), nil
}

func writeText(buf *bytes.Buffer, s string) error {
	enc, err := charmap.CodePage850.NewEncoder().String(s)
	if err != nil {
		return fmt.Errorf("cp850 encoding failed: %w", err)
	}
	buf.WriteString(enc)
	return nil
}

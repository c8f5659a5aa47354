package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Simplici0/profitcalc/internal/money"
	"github.com/Simplici0/profitcalc/internal/quote"
)

// Text writes a plain-text summary of q.
func Text(w io.Writer, q quote.Quote, cur money.Currency) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Cotización: %s\n", q.Title)
	fmt.Fprintf(bw, "Referencia: %s\n", q.Ref)
	fmt.Fprintf(bw, "Fecha: %s UTC\n", q.CreatedAt.Format("2006-01-02 15:04"))
	if q.Notes != "" {
		fmt.Fprintf(bw, "Notas: %s\n", q.Notes)
	}

	for _, section := range Summary(q, cur) {
		fmt.Fprintf(bw, "\n%s:\n", section.Title)
		for _, line := range section.Lines {
			fmt.Fprintf(bw, "- %s: %s\n", line.Label, line.Value)
		}
	}

	return bw.Flush()
}

package billing

import "fmt"

// Series is the independent numbering track an invoice belongs to. An
// invoice commits to its series at creation and keeps its number forever,
// soft delete included.
type Series string

const (
	SeriesGST    Series = "gst"
	SeriesNonGST Series = "non-gst"
)

// SeriesFor returns the numbering series for the given GST flag.
func SeriesFor(withGST bool) Series {
	if withGST {
		return SeriesGST
	}
	return SeriesNonGST
}

// FormatInvoiceNumber renders a sequence value as the printed invoice
// number: INV-GST-NNN for the GST series, INV-NNN otherwise. Zero-padded to
// three digits, unbounded once the counter passes 999.
func FormatInvoiceNumber(series Series, n int64) string {
	if series == SeriesGST {
		return fmt.Sprintf("INV-GST-%03d", n)
	}
	return fmt.Sprintf("INV-%03d", n)
}

package roster

import (
	"io"
	"strconv"
	"strings"
)

const csvHeader = "Name,Team,Stamps"

// WriteCSV writes the export format: a header line, then one fully quoted
// row per record. Rows are newline separated with no trailing newline.
func WriteCSV(w io.Writer, records []Record) error {
	var b strings.Builder
	b.WriteString(csvHeader)
	for _, rec := range records {
		b.WriteString("\n")
		b.WriteString(quote(rec.Name))
		b.WriteString(",")
		b.WriteString(quote(rec.Team))
		b.WriteString(",")
		b.WriteString(quote(strconv.Itoa(rec.Stamps)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ExportCSV is WriteCSV into a string.
func ExportCSV(records []Record) string {
	var b strings.Builder
	_ = WriteCSV(&b, records)
	return b.String()
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

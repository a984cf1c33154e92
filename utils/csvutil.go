package utils

import "strings"

// BuildCSV joins a header row and data rows into CSV text: every field is
// wrapped in double quotes, fields comma-joined, rows newline-joined.
//
// Embedded quotes and commas inside a field are NOT escaped beyond the
// quoting wrapper. That matches the export format the admin screens have
// always produced; callers needing strict CSV should not feed fields
// containing double quotes.
func BuildCSV(headers []string, rows [][]string) string {
	var b strings.Builder

	writeRow := func(row []string) {
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(field)
			b.WriteByte('"')
		}
	}

	writeRow(headers)
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(row)
	}

	return b.String()
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCSV(t *testing.T) {
	headers := []string{"Name", "Email"}
	rows := [][]string{
		{"John Smith", "john@example.com"},
		{"Priya Sharma", "priya@example.com"},
	}

	csv := BuildCSV(headers, rows)
	lines := strings.Split(csv, "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, `"Name","Email"`, lines[0])
	assert.Equal(t, `"John Smith","john@example.com"`, lines[1])
	assert.Equal(t, `"Priya Sharma","priya@example.com"`, lines[2])
}

func TestBuildCSVNoRows(t *testing.T) {
	csv := BuildCSV([]string{"A", "B"}, nil)
	assert.Equal(t, `"A","B"`, csv)
}

func TestBuildCSVQuotesEveryField(t *testing.T) {
	csv := BuildCSV([]string{"X"}, [][]string{{"a, with comma"}})
	lines := strings.Split(csv, "\n")

	// Fields with commas stay intact inside the quote wrapper
	assert.Equal(t, `"a, with comma"`, lines[1])
}

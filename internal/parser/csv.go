package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/doctree"
)

// CSVParser handles CSV files.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	tree := &doctree.DocTree{
		Title: strings.TrimSuffix(filename, ".csv"),
	}
	if len(records) == 0 {
		return tree, nil
	}
	tree.Children = []*doctree.DocNode{{
		Title:  tree.Title,
		Level:  1,
		Blocks: []doctree.Block{{Kind: doctree.Table, Rows: records}},
	}}
	return tree, nil
}

// ReadTable reads CSV with a header row into a cost table. Cells that
// parse as integers become int, other numbers float64, the rest stay
// strings. Rows of the wrong width are dropped by the table with a warning.
func ReadTable(r io.Reader) (*costmodel.Table, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse csv: no header row")
	}
	headers := make([]any, len(records[0]))
	for i, h := range records[0] {
		headers[i] = h
	}
	t := costmodel.NewTable(headers...)
	for _, rec := range records[1:] {
		row := make([]any, len(rec))
		for i, cell := range rec {
			row[i] = Cell(cell)
		}
		t.AddRow(row...)
	}
	return t, nil
}

// Cell converts a text cell to int, float64 or string.
func Cell(s string) any {
	s = strings.TrimSpace(s)
	clean := strings.ReplaceAll(strings.ReplaceAll(s, "_", ""), " ", "")
	if n, err := strconv.Atoi(clean); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(strings.Replace(clean, ",", ".", 1), 64); err == nil {
		return f
	}
	return s
}

func readRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}

package sheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one non-empty, trimmed first-column value
type Row struct {
	Text string
}

// Texts returns the row values in order
func Texts(rows []Row) []string {
	texts := make([]string, len(rows))
	for i, r := range rows {
		texts[i] = r.Text
	}
	return texts
}

// Extensions lists the file types the parser recognizes
var Extensions = []string{".xlsx", ".xlsm", ".xls", ".csv"}

// Supported reports whether path has a recognized extension
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Parser extracts first-column texts from spreadsheets
type Parser struct {
	// MaxRows caps the number of rows returned. Zero means no limit.
	MaxRows int
}

// New creates a parser with the given row cap
func New(maxRows int) *Parser {
	return &Parser{MaxRows: maxRows}
}

// Parse parses r using a zero-value parser
func Parse(name string, r io.Reader) ([]Row, error) {
	return (&Parser{}).Parse(name, r)
}

// ParseFile parses the file at path using a zero-value parser
func ParseFile(path string) ([]Row, error) {
	return (&Parser{}).ParseFile(path)
}

// ParseFile opens path read-only and parses it
func (p *Parser) ParseFile(path string) ([]Row, error) {
	file, err := os.Open(path) //nolint:gosec // user-selected input file
	if err != nil {
		return nil, &ParseError{File: filepath.Base(path), Message: "failed to open file", Cause: err}
	}
	defer func() { _ = file.Close() }()

	return p.Parse(filepath.Base(path), bufio.NewReader(file))
}

// Parse decodes r according to the extension of name, takes the first
// sheet, treats the first non-blank row as the header and returns the
// trimmed first-column value of every following non-blank row.
func (p *Parser) Parse(name string, r io.Reader) ([]Row, error) {
	var (
		grid [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		grid, err = readWorkbook(name, r)
	case ".csv":
		grid, err = readCSV(name, r)
	case ".xls":
		return nil, &ParseError{File: name, Message: "unsupported legacy .xls workbook, save it as .xlsx"}
	default:
		return nil, &ParseError{File: name, Message: "unsupported file type"}
	}
	if err != nil {
		return nil, err
	}

	return p.extract(grid)
}

func (p *Parser) extract(grid [][]string) ([]Row, error) {
	records := dataRecords(grid)
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	col := firstColumn(grid)
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		if col >= len(record) {
			continue
		}
		text := strings.TrimSpace(record[col])
		if text == "" {
			continue
		}
		rows = append(rows, Row{Text: text})
		if p.MaxRows > 0 && len(rows) == p.MaxRows {
			break
		}
	}

	if len(rows) == 0 {
		return nil, ErrNoValidRows
	}
	return rows, nil
}

func readWorkbook(name string, r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{File: name, Message: "malformed workbook", Cause: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{File: name, Message: "failed to read sheet " + sheets[0], Cause: err}
	}
	return grid, nil
}

func readCSV(name string, r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{File: name, Message: "failed to read file", Cause: err}
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	grid, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, &ParseError{File: name, Message: "malformed CSV", Cause: perr}
		}
		return nil, &ParseError{File: name, Message: "failed to read CSV", Cause: err}
	}
	return grid, nil
}

// dataRecords drops blank rows and the header
func dataRecords(grid [][]string) [][]string {
	var records [][]string
	headerSeen := false
	for _, row := range grid {
		if blank(row) {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}
		records = append(records, row)
	}
	return records
}

// firstColumn returns the leftmost column index holding any value
func firstColumn(grid [][]string) int {
	col := -1
	for _, row := range grid {
		for i, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if col == -1 || i < col {
				col = i
			}
			break
		}
	}
	if col == -1 {
		return 0
	}
	return col
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

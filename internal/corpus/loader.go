package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/kensaku/internal/models"
)

// Default column names for corpus files.
const (
	DefaultTitleColumn = "Heading"
	DefaultBodyColumn  = "Article"
)

// untitled is the title given to rows with an empty heading.
const untitled = "Untitled"

// Load reads a corpus file, dispatching on extension: .xlsx workbooks go
// through LoadXLSX, everything else is parsed as CSV. Empty column names
// fall back to the defaults.
func Load(path, titleColumn, bodyColumn string) (*Store, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path, titleColumn, bodyColumn)
	}
	return LoadCSV(path, titleColumn, bodyColumn)
}

// LoadCSV reads documents from a CSV file with a header row. Invalid
// UTF-8 sequences are replaced with the Unicode replacement rune, rows
// with both fields empty are skipped, and a missing heading becomes
// "Untitled". Ragged rows are tolerated; missing cells read as empty.
func LoadCSV(path, titleColumn, bodyColumn string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	titleIdx, bodyIdx, err := headerIndices(header, titleColumn, bodyColumn, path)
	if err != nil {
		return nil, err
	}

	var docs []models.Document
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if doc, ok := documentFromRow(record, titleIdx, bodyIdx); ok {
			docs = append(docs, doc)
		}
	}
	return NewStore(docs), nil
}

// LoadXLSX reads documents from the first sheet of an XLSX workbook with
// a header row, using the same column and row conventions as LoadCSV.
func LoadXLSX(path, titleColumn, bodyColumn string) (*Store, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("corpus workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read workbook rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("corpus workbook %s has no header row", path)
	}
	titleIdx, bodyIdx, err := headerIndices(rows[0], titleColumn, bodyColumn, path)
	if err != nil {
		return nil, err
	}

	var docs []models.Document
	for _, record := range rows[1:] {
		if doc, ok := documentFromRow(record, titleIdx, bodyIdx); ok {
			docs = append(docs, doc)
		}
	}
	return NewStore(docs), nil
}

// headerIndices resolves the title and body column positions. At least one
// of the two columns must be present.
func headerIndices(header []string, titleColumn, bodyColumn, path string) (int, int, error) {
	if titleColumn == "" {
		titleColumn = DefaultTitleColumn
	}
	if bodyColumn == "" {
		bodyColumn = DefaultBodyColumn
	}
	titleIdx, bodyIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case titleColumn:
			titleIdx = i
		case bodyColumn:
			bodyIdx = i
		}
	}
	if titleIdx == -1 && bodyIdx == -1 {
		return 0, 0, fmt.Errorf("corpus file %s has neither %q nor %q column", path, titleColumn, bodyColumn)
	}
	return titleIdx, bodyIdx, nil
}

// documentFromRow builds a document from one record. Rows with both
// fields empty are skipped (ok is false).
func documentFromRow(record []string, titleIdx, bodyIdx int) (models.Document, bool) {
	title := fieldAt(record, titleIdx)
	body := fieldAt(record, bodyIdx)
	if title == "" && body == "" {
		return models.Document{}, false
	}
	if title == "" {
		title = untitled
	}
	return models.Document{Title: title, Body: body}, true
}

func fieldAt(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(strings.ToValidUTF8(record[i], "�"))
}

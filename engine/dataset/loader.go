package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/xuri/excelize/v2"

	"github.com/docbridge/docbridge/engine/core"
)

// Loader fetches tabular datasets over HTTP and decodes them into documents.
// The first row of a dataset is its header; every missing or blank cell
// decodes to an empty string, never null, so imported documents always carry
// the full header set. Cell values are kept as strings without type coercion.
type Loader struct {
	client  *resty.Client
	maxRows int
}

// NewLoader builds a loader with the given fetch timeout and row bound.
// A maxRows of zero disables the bound.
func NewLoader(timeout time.Duration, maxRows int) *Loader {
	client := resty.New().
		SetTimeout(timeout)
	return &Loader{client: client, maxRows: maxRows}
}

// Load fetches the dataset at link and decodes it according to the format
// detected from the link's extension.
func (l *Loader) Load(ctx context.Context, link string) ([]core.Document, error) {
	format, ok := DetectFormat(link)
	if !ok {
		return nil, fmt.Errorf("no supported dataset extension in %q", link)
	}
	resp, err := l.client.R().SetContext(ctx).Get(link)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("dataset fetch returned status %d", resp.StatusCode())
	}
	switch format {
	case FormatXLSX:
		return l.decodeXLSX(resp.Body())
	default:
		return l.decodeCSV(resp.Body())
	}
}

func (l *Loader) decodeCSV(data []byte) ([]core.Document, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	// Ragged rows are tolerated and normalized against the header instead.
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return l.rowsToDocuments(records)
}

func (l *Loader) decodeXLSX(data []byte) ([]core.Document, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer file.Close()
	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	// Only the first sheet is imported.
	records, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return l.rowsToDocuments(records)
}

// rowsToDocuments maps header plus data rows onto documents. Cells beyond the
// header width are dropped; cells missing from short rows become empty strings.
func (l *Loader) rowsToDocuments(records [][]string) ([]core.Document, error) {
	if len(records) == 0 {
		return nil, nil
	}
	header := records[0]
	rows := records[1:]
	if l.maxRows > 0 && len(rows) > l.maxRows {
		return nil, fmt.Errorf("dataset has %d rows, exceeding the %d row bound", len(rows), l.maxRows)
	}
	docs := make([]core.Document, 0, len(rows))
	for _, row := range rows {
		doc := make(core.Document, len(header))
		for i, key := range header {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			doc[key] = value
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

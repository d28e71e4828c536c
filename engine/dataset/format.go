package dataset

import (
	"path"
	"strings"
)

// Format identifies a supported tabular dataset encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat sniffs the dataset format from the link's filename extension.
// Query strings and fragments are ignored so presigned URLs detect cleanly.
func DetectFormat(link string) (Format, bool) {
	trimmed := link
	for _, sep := range []string{"?", "#"} {
		if i := strings.Index(trimmed, sep); i >= 0 {
			trimmed = trimmed[:i]
		}
	}
	switch strings.ToLower(path.Ext(trimmed)) {
	case ".csv":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	}
	return "", false
}

package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docbridge/docbridge/engine/dataset"
)

func TestDetectFormat(t *testing.T) {
	t.Run("Should detect csv links", func(t *testing.T) {
		format, ok := dataset.DetectFormat("https://example.com/data/people.csv")
		assert.True(t, ok)
		assert.Equal(t, dataset.FormatCSV, format)
	})

	t.Run("Should detect xlsx links", func(t *testing.T) {
		format, ok := dataset.DetectFormat("https://example.com/export.xlsx")
		assert.True(t, ok)
		assert.Equal(t, dataset.FormatXLSX, format)
	})

	t.Run("Should ignore extension case", func(t *testing.T) {
		format, ok := dataset.DetectFormat("https://example.com/DATA.CSV")
		assert.True(t, ok)
		assert.Equal(t, dataset.FormatCSV, format)
	})

	t.Run("Should ignore query strings and fragments", func(t *testing.T) {
		format, ok := dataset.DetectFormat("https://example.com/report.xlsx?sig=abc123#sheet1")
		assert.True(t, ok)
		assert.Equal(t, dataset.FormatXLSX, format)
	})

	t.Run("Should reject links without a supported extension", func(t *testing.T) {
		_, ok := dataset.DetectFormat("https://example.com/data.json")
		assert.False(t, ok)
		_, ok = dataset.DetectFormat("https://example.com/data")
		assert.False(t, ok)
	})
}

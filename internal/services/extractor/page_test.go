package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/excerpo/internal/models"
)

func TestBuildPageRecordCounts(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantWords int
		wantChars int
	}{
		{"empty text", "", 0, 0},
		{"whitespace only", "   \t  \n  ", 0, 9},
		{"simple sentence", "one two three", 3, 13},
		{"newlines delimit words", "one\ntwo\nthree", 3, 13},
		{"repeated separators", "one   two", 2, 9},
		{"unicode runes counted once", "héllo wörld", 2, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := buildPageRecord(1, tt.text, nil, nil, nil)
			assert.Equal(t, tt.wantWords, record.WordCount)
			assert.Equal(t, tt.wantChars, record.CharCount)
		})
	}
}

func TestBuildPageRecordNormalizesFonts(t *testing.T) {
	record := buildPageRecord(3, "text", nil, nil, nil)
	assert.Equal(t, 3, record.PageNumber)
	assert.NotNil(t, record.Fonts)
	assert.Empty(t, record.Fonts)

	record = buildPageRecord(4, "text", []string{"Helvetica (12.0pt)"}, nil, nil)
	assert.Equal(t, []string{"Helvetica (12.0pt)"}, record.Fonts)
}

func TestBuildPageRecordKeepsImagesAndWarnings(t *testing.T) {
	images := []models.PageImage{{Index: 0, Format: "png", Width: 16, Height: 16, SizeBytes: 128}}
	warnings := []string{"image img_1.tif: decode failed: unsupported"}

	record := buildPageRecord(2, "page with image", nil, images, warnings)
	assert.Len(t, record.Images, 1)
	assert.Equal(t, warnings, record.Warnings)
	assert.Empty(t, record.Error)
}

func TestFailedPageRecord(t *testing.T) {
	record := failedPageRecord(7, errors.New("corrupt page content: bad stream"))

	assert.Equal(t, 7, record.PageNumber)
	assert.Contains(t, record.Error, "page 7")
	assert.Contains(t, record.Error, "corrupt page content")
	assert.Zero(t, record.WordCount)
	assert.Empty(t, record.Text)
}

package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/excerpo/internal/models"
)

// buildPageRecord packages one page's raw extraction output into a
// PageRecord. Word count is the number of whitespace-delimited tokens
// (locale-independent); character count is the rune length of the text
// including whitespace. An empty font list is valid.
func buildPageRecord(pageNr int, text string, fonts []string, images []models.PageImage, warnings []string) models.PageRecord {
	if fonts == nil {
		fonts = []string{}
	}
	return models.PageRecord{
		PageNumber: pageNr,
		Text:       text,
		WordCount:  len(strings.Fields(text)),
		CharCount:  utf8.RuneCountInString(text),
		Fonts:      fonts,
		Images:     images,
		Warnings:   warnings,
	}
}

// failedPageRecord records a single page's extraction failure. The page
// keeps its slot in the result so page numbering stays 1..N.
func failedPageRecord(pageNr int, err error) models.PageRecord {
	perr := &models.PageExtractionError{PageNumber: pageNr, Err: err}
	return models.PageRecord{
		PageNumber: pageNr,
		Fonts:      []string{},
		Error:      perr.Error(),
	}
}

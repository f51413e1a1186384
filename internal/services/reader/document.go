package reader

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	// Image formats recognized when probing extracted page images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
	pdfr "rsc.io/pdf"

	"github.com/ternarybob/excerpo/internal/interfaces"
	"github.com/ternarybob/excerpo/internal/models"
)

// Document is one open PDF. Pages are read strictly sequentially; the
// underlying handle is not safe for concurrent page access.
type Document struct {
	path    string
	file    *os.File
	pdfCtx  *model.Context
	text    *pdfr.Reader
	logger  arbor.ILogger
	meta    models.DocumentMetadata
	tempDir string
}

var _ interfaces.Document = (*Document)(nil)

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return d.pdfCtx.PageCount
}

// Metadata returns normalized document-level metadata.
func (d *Document) Metadata() models.DocumentMetadata {
	return d.meta
}

// PageText extracts the text of one page together with the distinct font
// descriptors used on it, formatted as "Name (SIZEpt)". rsc.io/pdf panics on
// corrupt content streams; those panics surface as a per-page error here.
func (d *Document) PageText(pageNr int) (text string, fonts []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("corrupt page content: %v", rec)
		}
	}()

	if pageNr < 1 || pageNr > d.text.NumPage() {
		return "", nil, nil
	}

	page := d.text.Page(pageNr)
	if page.V.IsNull() {
		return "", nil, nil
	}

	content := page.Content()

	var builder strings.Builder
	fontSet := make(map[string]struct{})
	lastY := 0.0
	prev := ""
	for i, span := range content.Text {
		if span.Font != "" {
			fontSet[fmt.Sprintf("%s (%.1fpt)", span.Font, span.FontSize)] = struct{}{}
		}
		if i > 0 {
			if span.Y != lastY {
				builder.WriteString("\n")
			} else if !strings.HasSuffix(prev, " ") && !strings.HasPrefix(span.S, " ") {
				builder.WriteString(" ")
			}
		}
		builder.WriteString(span.S)
		prev = span.S
		lastY = span.Y
	}

	fonts = make([]string, 0, len(fontSet))
	for f := range fontSet {
		fonts = append(fonts, f)
	}
	sort.Strings(fonts)

	return builder.String(), fonts, nil
}

// PageImages extracts descriptors for the embedded images on one page by
// round-tripping through pdfcpu's file-based image extraction. Images that
// cannot be decoded are reported as warnings, not errors.
func (d *Document) PageImages(pageNr int) ([]models.PageImage, []string, error) {
	outDir, err := d.pageTempDir(pageNr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create image extraction dir: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(d.path, outDir, []string{strconv.Itoa(pageNr)}, conf); err != nil {
		// No extractable images is an empty result, not a page failure.
		d.logger.Debug().Err(err).Int("page", pageNr).Msg("Image extraction produced no output")
		return nil, nil, nil
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read extracted images: %w", err)
	}

	images := make([]models.PageImage, 0, len(entries))
	var warnings []string
	for i, entry := range entries {
		if entry.IsDir() {
			continue
		}

		imgPath := filepath.Join(outDir, entry.Name())
		data, err := os.ReadFile(imgPath)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("image %s: %v", entry.Name(), err))
			continue
		}

		img := models.PageImage{
			Index:     i,
			Name:      entry.Name(),
			Format:    strings.TrimPrefix(strings.ToLower(filepath.Ext(entry.Name())), "."),
			SizeBytes: int64(len(data)),
		}

		if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			img.Width = cfg.Width
			img.Height = cfg.Height
			img.Format = format
		} else {
			warnings = append(warnings, fmt.Sprintf("image %s: decode failed: %v", entry.Name(), err))
		}

		images = append(images, img)
	}

	return images, warnings, nil
}

// pageTempDir lazily creates the scratch directory used for image
// extraction. One subdirectory per page keeps indices stable.
func (d *Document) pageTempDir(pageNr int) (string, error) {
	if d.tempDir == "" {
		dir, err := os.MkdirTemp("", "excerpo-images-")
		if err != nil {
			return "", err
		}
		d.tempDir = dir
	}
	dir := filepath.Join(d.tempDir, fmt.Sprintf("page_%d", pageNr))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Close releases the file handle and removes any image extraction scratch
// space. Safe to call exactly once per Document.
func (d *Document) Close() error {
	if d.tempDir != "" {
		os.RemoveAll(d.tempDir)
		d.tempDir = ""
	}
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

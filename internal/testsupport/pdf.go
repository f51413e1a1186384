// Package testsupport generates PDF fixtures for tests and local
// development. Fixtures are built with fpdf so no binary test data is
// checked into the repository.
package testsupport

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DocumentSpec describes a fixture PDF to generate.
type DocumentSpec struct {
	Title     string
	Author    string
	Pages     []string // one text block per page
	WithImage bool     // embed a small PNG on the last page
}

// WritePDF generates a PDF at path according to spec.
func WritePDF(path string, spec DocumentSpec) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	if spec.Title != "" {
		pdf.SetTitle(spec.Title, false)
	}
	if spec.Author != "" {
		pdf.SetAuthor(spec.Author, false)
	}
	pdf.SetFont("Helvetica", "", 12)

	for _, text := range spec.Pages {
		pdf.AddPage()
		pdf.MultiCell(0, 6, text, "", "L", false)
	}

	if spec.WithImage {
		imgData, err := samplePNG()
		if err != nil {
			return fmt.Errorf("failed to build sample image: %w", err)
		}
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("sample", opts, bytes.NewReader(imgData))
		pdf.ImageOptions("sample", 20, 120, 40, 0, false, opts, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write fixture PDF: %w", err)
	}
	return nil
}

// WriteEncryptedPDF generates a one-page PDF at path protected with the
// given user password, using pdfcpu's encryption.
func WriteEncryptedPDF(path, password string) error {
	plain := filepath.Join(filepath.Dir(path), "plain_"+filepath.Base(path))
	if err := WritePDF(plain, DocumentSpec{Pages: []string{"This content is protected."}}); err != nil {
		return err
	}
	defer os.Remove(plain)

	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	if err := api.EncryptFile(plain, path, conf); err != nil {
		return fmt.Errorf("failed to encrypt fixture PDF: %w", err)
	}
	return nil
}

// WriteCorruptPDF writes a file that carries a PDF header but no valid
// structure behind it.
func WriteCorruptPDF(path string) error {
	return os.WriteFile(path, []byte("%PDF-1.7\nthis is not a cross reference table\n%%EOF\n"), 0644)
}

// samplePNG renders a small solid-color PNG for embedding.
func samplePNG() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

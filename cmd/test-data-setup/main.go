// test-data-setup generates the sample PDF fixtures used for local
// development and manual testing. No binary fixtures are checked in;
// run this to materialize them.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/excerpo/internal/common"
	"github.com/ternarybob/excerpo/internal/testsupport"
)

func main() {
	dir := flag.String("dir", "./testdata", "Directory to write fixture PDFs into")
	flag.Parse()

	logger := common.GetLogger()

	if err := os.MkdirAll(*dir, 0755); err != nil {
		logger.Error().Err(err).Str("dir", *dir).Msg("Failed to create fixture directory")
		os.Exit(1)
	}

	fixtures := []struct {
		name  string
		write func(path string) error
	}{
		{"sample.pdf", func(path string) error {
			return testsupport.WritePDF(path, testsupport.DocumentSpec{
				Title:  "Sample Document",
				Author: "Excerpo",
				Pages: []string{
					"Page one of the sample document. It contains plain text only.",
					"Page two continues with more text content for word counting.",
					"Page three closes out the sample document.",
				},
			})
		}},
		{"with_image.pdf", func(path string) error {
			return testsupport.WritePDF(path, testsupport.DocumentSpec{
				Title:     "Image Document",
				Pages:     []string{"This page carries an embedded image below."},
				WithImage: true,
			})
		}},
		{"encrypted.pdf", func(path string) error {
			return testsupport.WriteEncryptedPDF(path, "secret")
		}},
		{"corrupt.pdf", testsupport.WriteCorruptPDF},
	}

	failed := 0
	for _, f := range fixtures {
		path := filepath.Join(*dir, f.name)
		if err := f.write(path); err != nil {
			logger.Error().Err(err).Str("fixture", f.name).Msg("Fixture generation failed")
			failed++
			continue
		}
		logger.Info().Str("path", path).Msg("Generated fixture")
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d fixture(s) failed\n", failed)
		os.Exit(1)
	}
}

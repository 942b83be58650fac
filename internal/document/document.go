// Package document turns uploaded CV and job-description files into cleaned
// plain text.
package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrExtractionFailed    = errors.New("text extraction failed")
)

type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
)

// Classify resolves the file kind from the extension, falling back to the
// declared content type.
func Classify(filename, contentType string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(filename))) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return KindPDF, nil
	case strings.Contains(ct, "officedocument"):
		return KindDOCX, nil
	}
	return "", ErrUnsupportedFileType
}

// Extract returns the cleaned text of a PDF or DOCX file.
func Extract(filename, contentType string, data []byte) (string, error) {
	kind, err := Classify(filename, contentType)
	if err != nil {
		return "", err
	}

	var raw string
	switch kind {
	case KindPDF:
		raw, err = extractPDF(data)
	case KindDOCX:
		raw, err = extractDOCX(data)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrExtractionFailed, kind, err)
	}
	return Clean(raw), nil
}

func extractPDF(data []byte) (text string, err error) {
	// The decoder panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf decode panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	n := r.NumPage()
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		s, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, s)
	}
	return strings.Join(pages, "\n\n"), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", errors.New("word/document.xml not found")
	}

	rc, err := body.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	paras, err := docxParagraphs(rc)
	if err != nil {
		return "", err
	}
	return strings.Join(paras, "\n"), nil
}

// docxParagraphs walks WordprocessingML and returns the non-empty text of
// each w:p element. Runs (w:t) are concatenated, w:tab becomes a tab and
// w:br/w:cr a newline. A paragraph nested inside another (text boxes,
// w:txbxContent) is emitted on its own, before the paragraph holding it.
func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var out []string
	var open []*strings.Builder
	inText := false

	top := func() *strings.Builder {
		if len(open) == 0 {
			return nil
		}
		return open[len(open)-1]
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "t":
				inText = true
			case "tab":
				if b := top(); b != nil {
					b.WriteByte('\t')
				}
			case "br", "cr":
				if b := top(); b != nil {
					b.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if b := top(); b != nil {
					open = open[:len(open)-1]
					if s := strings.TrimSpace(b.String()); s != "" {
						out = append(out, s)
					}
				}
			}
		case xml.CharData:
			if b := top(); inText && b != nil {
				b.Write(t)
			}
		}
	}
	return out, nil
}

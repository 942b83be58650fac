package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		contentType string
		want        Kind
		wantErr     error
	}{
		{name: "pdf extension", filename: "cv.PDF", want: KindPDF},
		{name: "docx extension", filename: "cv.docx", contentType: "application/pdf", want: KindDOCX},
		{name: "pdf content type", filename: "upload", contentType: "application/pdf", want: KindPDF},
		{name: "docx content type", filename: "upload.bin", contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", want: KindDOCX},
		{name: "unsupported", filename: "notes.txt", contentType: "text/plain", wantErr: ErrUnsupportedFileType},
		{name: "legacy doc", filename: "cv.doc", contentType: "application/msword", wantErr: ErrUnsupportedFileType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.filename, tc.contentType)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestExtract_UnsupportedType(t *testing.T) {
	_, err := Extract("notes.txt", "text/plain", []byte("hello"))
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := Extract("cv.pdf", "application/pdf", []byte("definitely not a pdf"))
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtract_CorruptDOCX(t *testing.T) {
	_, err := Extract("cv.docx", "", []byte("PK nope"))
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtract_DOCX(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane   Doe</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t>Skills:</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve">Python, SQL</w:t></w:r></w:p>
<w:p><w:r><w:t>Skills:</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve">Python, SQL</w:t></w:r></w:p>
<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>
</w:body>
</w:document>`
	data := buildDOCX(t, map[string]string{"word/document.xml": body})

	got, err := Extract("cv.docx", "", data)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := "Jane Doe\nSkills: Python, SQL\nLine one\nLine two"
	if got != want {
		t.Fatalf("unexpected text:\n got=%q\nwant=%q", got, want)
	}
}

func TestDocxParagraphs_TextBoxKeepsOuterRuns(t *testing.T) {
	body := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Skills: </w:t></w:r><w:r><w:pict><w:txbxContent><w:p><w:r><w:t>Box</w:t></w:r></w:p></w:txbxContent></w:pict></w:r><w:r><w:t>Python and SQL</w:t></w:r></w:p>
</w:body></w:document>`

	got, err := docxParagraphs(strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []string{"Box", "Skills: Python and SQL"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected paragraphs:\n got=%q\nwant=%q", got, want)
	}
}

func TestExtract_DOCXWithoutBody(t *testing.T) {
	data := buildDOCX(t, map[string]string{"docProps/app.xml": "<x/>"})
	_, err := Extract("cv.docx", "", data)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func buildDOCX(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

package extract

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

const (
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedType is returned for file types the extractor cannot handle.
	// Re-running extraction on the same input cannot succeed, so callers must not retry.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrMalformedDocument is returned when the underlying parser rejects the bytes.
	ErrMalformedDocument = errors.New("malformed document")
)

// Text extracts plain text from an in-memory document. It is a pure
// function of (data, declaredType, fileName); pdf and docx/doc families are
// supported, anything else fails with ErrUnsupportedType.
func Text(data []byte, declaredType string, fileName string) (string, error) {
	switch normalizeType(declaredType, fileName) {
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX, mimeDOC:
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, declaredType)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty docx data", ErrMalformedDocument)
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("%w: document.xml not found", ErrMalformedDocument)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// NormalizedType reports the short family name ("pdf", "docx", "doc") for a
// declared type and file name, or the cleaned declared type when unrecognized.
func NormalizedType(declaredType string, fileName string) string {
	switch normalizeType(declaredType, fileName) {
	case mimePDF:
		return "pdf"
	case mimeDOCX:
		return "docx"
	case mimeDOC:
		return "doc"
	}
	return strings.ToLower(strings.TrimSpace(strings.Split(declaredType, ";")[0]))
}

// normalizeType maps mime types and bare extensions onto the supported families.
func normalizeType(declaredType string, fileName string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(declaredType, ";")[0]))
	switch clean {
	case mimePDF, "pdf":
		return mimePDF
	case mimeDOCX, "docx":
		return mimeDOCX
	case mimeDOC, "doc":
		return mimeDOC
	}
	if clean == "application/zip" || clean == "application/octet-stream" || clean == "" {
		switch strings.ToLower(filepath.Ext(fileName)) {
		case ".pdf":
			return mimePDF
		case ".docx":
			return mimeDOCX
		case ".doc":
			return mimeDOC
		}
	}
	return clean
}

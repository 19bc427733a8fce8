package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const docxDocumentPath = "word/document.xml"

// extractDOCX reads each paragraph's text in document order and concatenates
// with a newline after each paragraph. A DOCX container is a zip archive
// whose main part is word/document.xml; paragraph text lives in w:t runs
// inside w:p elements.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == docxDocumentPath {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("%w: missing %s", ErrExtractionFailed, docxDocumentPath)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer rc.Close()

	return readParagraphs(rc)
}

// readParagraphs streams the document XML rather than unmarshalling the whole
// WordprocessingML schema; only w:p boundaries and w:t character data matter.
func readParagraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
)

// docxText concatenates the paragraph text of a Word document.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			return zipEntryText(f)
		}
	}
	return "", errors.New("docx: word/document.xml not found")
}

// pptxText concatenates slide shape text and, when present, the
// presenter notes for each slide, in slide order.
func pptxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	slides := make(map[int]*zip.File)
	notes := make(map[int]*zip.File)
	for _, f := range zr.File {
		if n, ok := slideNumber(f.Name, "ppt/slides/slide"); ok {
			slides[n] = f
		} else if n, ok := slideNumber(f.Name, "ppt/notesSlides/notesSlide"); ok {
			notes[n] = f
		}
	}
	if len(slides) == 0 {
		return "", errors.New("pptx: no slides found")
	}

	nums := make([]int, 0, len(slides))
	for n := range slides {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	var parts []string
	for _, n := range nums {
		text, err := zipEntryText(slides[n])
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
		if nf, ok := notes[n]; ok {
			text, err := zipEntryText(nf)
			if err != nil {
				return "", err
			}
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func slideNumber(name, prefix string) (int, bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".xml") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".xml"))
	if err != nil {
		return 0, false
	}
	return n, true
}

func zipEntryText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return runText(rc)
}

// runText walks WordprocessingML or DrawingML and collects the
// character runs. Both vocabularies use <t> for text runs and <p> for
// paragraphs, so matching on the local name covers docx and pptx alike.
func runText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				var s string
				if err := dec.DecodeElement(&s, &el); err != nil {
					return "", err
				}
				sb.WriteString(s)
			}
		case xml.EndElement:
			if el.Name.Local == "p" {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String(), nil
}

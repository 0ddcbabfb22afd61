package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"lecturequizbot/models"
)

// Source records which extraction path produced a Result.
type Source string

const (
	SourceNative Source = "native"
	SourceOCR    Source = "ocr"
	SourceFailed Source = "failed"
)

const (
	// MinUsableRunes is the minimum cleaned-text length required before
	// question generation is attempted. Shorter material reliably yields
	// too few or degenerate questions.
	MinUsableRunes = 400

	// pdfNativeMin is the threshold below which a PDF's embedded text is
	// assumed to be a scan artifact and the document is re-read via OCR.
	pdfNativeMin = 300
)

// Result is the outcome of one extraction attempt. Text is non-empty
// only when Source is not SourceFailed.
type Result struct {
	Text   string
	Source Source
}

// Usable reports whether the extracted text is long enough to feed the
// generation pipeline.
func (r Result) Usable() bool {
	return r.Source != SourceFailed && utf8.RuneCountInString(r.Text) >= MinUsableRunes
}

// OCR is the external OCR collaborator. An empty string with nil error
// means the engine found no text.
type OCR interface {
	Recognize(ctx context.Context, filename string, data []byte, lang string) (string, error)
}

// Extractor resolves a document's bytes into plain text, escalating
// through format-specific fallbacks. Every failure inside a single
// attempt degrades to the next fallback instead of propagating.
type Extractor struct {
	ocr OCR // nil disables the OCR fallback
	log logrus.FieldLogger
}

// New creates an Extractor. ocr may be nil when no OCR collaborator is
// configured; PDFs without embedded text and images then fail cleanly.
func New(ocr OCR, log logrus.FieldLogger) *Extractor {
	return &Extractor{ocr: ocr, log: log}
}

// Extract dispatches on the document format and returns cleaned text
// with its provenance. It never returns an error: exhausted fallbacks
// yield a SourceFailed result and the caller decides what is terminal.
func (e *Extractor) Extract(ctx context.Context, doc models.Document) Result {
	switch doc.Format {
	case models.FormatPDF:
		text, err := pdfText(doc.Data)
		if err == nil {
			if cleaned := CleanText(text); utf8.RuneCountInString(cleaned) > pdfNativeMin {
				return Result{Text: cleaned, Source: SourceNative}
			}
		} else {
			e.log.WithField("doc_id", doc.ID).WithError(err).Debug("native pdf extraction failed, trying ocr")
		}
		return e.viaOCR(ctx, doc)

	case models.FormatDOCX:
		return e.native(doc, docxText)

	case models.FormatPPTX:
		return e.native(doc, pptxText)

	case models.FormatTXT:
		// Undecodable byte sequences are substituted, not fatal.
		cleaned := CleanText(strings.ToValidUTF8(string(doc.Data), string(utf8.RuneError)))
		if cleaned == "" {
			return Result{Source: SourceFailed}
		}
		return Result{Text: cleaned, Source: SourceNative}

	case models.FormatImage:
		return e.viaOCR(ctx, doc)

	default:
		return Result{Source: SourceFailed}
	}
}

func (e *Extractor) native(doc models.Document, parse func([]byte) (string, error)) Result {
	text, err := parse(doc.Data)
	if err != nil {
		e.log.WithField("doc_id", doc.ID).WithError(err).Debug("native extraction failed")
		return Result{Source: SourceFailed}
	}
	cleaned := CleanText(text)
	if cleaned == "" {
		return Result{Source: SourceFailed}
	}
	return Result{Text: cleaned, Source: SourceNative}
}

func (e *Extractor) viaOCR(ctx context.Context, doc models.Document) Result {
	if e.ocr == nil {
		return Result{Source: SourceFailed}
	}
	text, err := e.ocr.Recognize(ctx, doc.Filename, doc.Data, doc.Language)
	if err != nil {
		e.log.WithField("doc_id", doc.ID).WithError(err).Warn("ocr failed")
		return Result{Source: SourceFailed}
	}
	cleaned := CleanText(text)
	if cleaned == "" {
		return Result{Source: SourceFailed}
	}
	return Result{Text: cleaned, Source: SourceOCR}
}

// pdfText reads the embedded text layer of a PDF. The reader panics on
// some malformed files, so the panic is converted into an error here.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	rd, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rd); err != nil {
		return "", err
	}
	return buf.String(), nil
}

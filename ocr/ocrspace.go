// Package ocr talks to the OCR.space HTTP API, which handles both
// raster images and multi-page scanned PDFs.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultEndpoint = "https://api.ocr.space/parse/image"
	requestTimeout  = 120 * time.Second
)

// Client is an OCR.space API client.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
	log      logrus.FieldLogger
}

// NewClient creates an OCR.space client with the given API key.
func NewClient(apiKey string, log logrus.FieldLogger) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: requestTimeout},
		log:      log,
	}
}

type parseResult struct {
	ParsedText string `json:"ParsedText"`
}

type parseResponse struct {
	ParsedResults        []parseResult `json:"ParsedResults"`
	IsErroredOnProcessing bool         `json:"IsErroredOnProcessing"`
	ErrorMessage         any           `json:"ErrorMessage"` // string or []string depending on failure
}

// Recognize uploads the file and returns the concatenated text of all
// recognized pages. An empty string means the engine found no text.
func (c *Client) Recognize(ctx context.Context, filename string, data []byte, lang string) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := map[string]string{
		"apikey":            c.apiKey,
		"language":          languageCode(lang),
		"isOverlayRequired": "false",
		"OCREngine":         "2",
		"scale":             "true",
		"detectOrientation": "true",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return "", err
		}
	}

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr request failed with status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed parseResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("ocr response parse: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("ocr processing error: %v", parsed.ErrorMessage)
	}

	var texts []string
	for _, res := range parsed.ParsedResults {
		if res.ParsedText != "" {
			texts = append(texts, res.ParsedText)
		}
	}

	c.log.WithFields(logrus.Fields{
		"filename": filename,
		"pages":    len(parsed.ParsedResults),
		"took":     time.Since(start).Round(time.Millisecond),
	}).Debug("ocr completed")

	return strings.Join(texts, "\n"), nil
}

// languageCode maps a content language to an OCR.space engine code.
func languageCode(lang string) string {
	if strings.HasPrefix(strings.ToLower(lang), "ar") {
		return "ara"
	}
	return "eng"
}

// Package ai generates quiz question candidates from text chunks using
// an OpenAI-compatible chat completion API (Groq by default).
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"lecturequizbot/models"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"

	systemPrompt = "You are an expert at turning educational texts into exams. " +
		"Write precise, unambiguous questions taken directly from the text and avoid vague ones. " +
		"Reply with JSON only, without any extra commentary."

	userPromptTemplate = `Turn the following lecture text into a varied set of exam questions (multiple choice and true/false).
Rules:
- Between 8 and 14 questions.
- Every MCQ question has exactly four options.
- True/false questions have type "tf" and exactly the two options ["True","False"].
- Write all questions and options in %s.
- Base every question strictly on information stated clearly in the text.
Reply with a valid JSON object of the form:
{"items":[{"type":"mcq"|"tf","question":"...","options":["..","..","..",".."],"correct":0}]}

Text:
%s`
)

// Client generates question candidates through a chat completion model.
type Client struct {
	client *openai.Client
	model  string
	log    logrus.FieldLogger
}

// NewClient creates a generation client for Groq's OpenAI-compatible API.
func NewClient(apiKey, model string, log logrus.FieldLogger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log,
	}
}

// GenerateQuestions asks the model to turn one text chunk into question
// candidates in the given language. The response is trusted
// syntactically only; callers validate every candidate.
func (c *Client) GenerateQuestions(ctx context.Context, chunk, lang string) ([]models.Candidate, error) {
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(userPromptTemplate, languageName(lang), chunk)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	candidates, err := parseCandidates(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"model":      c.model,
		"candidates": len(candidates),
		"took":       time.Since(start).Round(time.Millisecond),
	}).Debug("generation call completed")

	return candidates, nil
}

// parseCandidates accepts the documented {"items":[...]} shape as well
// as the bare-array and {"questions":[...]} variants models sometimes
// produce in spite of the prompt.
func parseCandidates(content string) ([]models.Candidate, error) {
	content = strings.TrimSpace(content)

	var wrapper struct {
		Items     []models.Candidate `json:"items"`
		Questions []models.Candidate `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &wrapper); err == nil {
		if len(wrapper.Items) > 0 {
			return wrapper.Items, nil
		}
		if len(wrapper.Questions) > 0 {
			return wrapper.Questions, nil
		}
	}

	var arr []models.Candidate
	if err := json.Unmarshal([]byte(content), &arr); err == nil {
		return arr, nil
	}

	return nil, errors.New("response contained no candidate list")
}

func languageName(lang string) string {
	if strings.HasPrefix(strings.ToLower(lang), "ar") {
		return "Arabic"
	}
	return "English"
}

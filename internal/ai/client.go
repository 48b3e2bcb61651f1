// Package ai is the optional live assistant backend. When no API key is
// configured every call degrades to a visible, non-fatal error and the
// mock resolver remains the answering path.
package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("ai backend not configured")

const systemPrompt = "You are GabAi, a helpful university assistant."

// Message is one turn of conversation context for the completion call.
type Message struct {
	Role    string
	Content string
}

// Client wraps the OpenAI API for text completion and audio transcription.
type Client struct {
	api   *openai.Client
	model string
	log   *logrus.Entry
}

// NewClient creates a client. An empty apiKey yields a client whose calls
// all return ErrNotConfigured rather than failing construction.
func NewClient(apiKey, model string) *Client {
	c := &Client{
		model: model,
		log:   logrus.WithField("component", "ai"),
	}
	if c.model == "" {
		c.model = openai.GPT3Dot5Turbo
	}
	if apiKey == "" {
		c.log.Warn("no API key configured, live AI responses disabled")
		return c
	}
	c.api = openai.NewClient(apiKey)
	return c
}

// Enabled reports whether live calls can be made.
func (c *Client) Enabled() bool {
	return c.api != nil
}

// GenerateResponse runs a chat completion over the conversation, optionally
// grounding the system prompt with campus context.
func (c *Client) GenerateResponse(ctx context.Context, messages []Message, campusContext string) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}

	system := systemPrompt
	if campusContext != "" {
		system = fmt.Sprintf("%s Use this context to answer: %s", systemPrompt, campusContext)
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
		},
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.log.WithError(err).Error("chat completion failed")
		return "", fmt.Errorf("generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// TranscribeAudio transcribes a recorded audio payload with Whisper.
func (c *Client) TranscribeAudio(ctx context.Context, name string, audio []byte) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: name,
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		c.log.WithError(err).Error("transcription failed")
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return resp.Text, nil
}

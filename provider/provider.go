// Package provider defines chat completion transports for the remote LLM endpoint.
package provider

import "github.com/ZaguanLabs/readlai"

// DefaultBaseURL is the OpenAI-compatible OpenRouter API root.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Completer is an alias to the main package interface for convenience.
type Completer = readlai.Completer

// ChatRequest is an alias to the main package type.
type ChatRequest = readlai.ChatRequest

// chatMessage and chatResponse mirror the chat completion wire format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

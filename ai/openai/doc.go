// Package openai implements the ai interfaces against OpenAI-compatible
// APIs (OpenAI, Groq, Ollama, LocalAI, vLLM) via langchaingo.
//
// All analysis services share one chat completion client and a common
// JSON-mode calling convention: temperature zero, markdown fence stripping,
// a JSON repair pass, and retry with exponential backoff that slows down
// further on rate-limit responses.
package openai

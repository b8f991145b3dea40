package gita

import (
	"errors"
)

var (
	// ErrClientNotInitialized is returned when a quote is requested before
	// Open configured the Gemini client.
	ErrClientNotInitialized = errors.New("gemini client not initialized")

	// ErrEmptyResponse is returned when the model produced no text at all.
	ErrEmptyResponse = errors.New("empty response from gemini")

	// ErrMalformedQuote is returned when the response text does not decode
	// into a complete quote. Callers treat this as "no quote available".
	ErrMalformedQuote = errors.New("malformed gita quote payload")
)

package ocr

import (
	"context"
	"errors"
	"io"
)

// ErrUnavailable indicates the text-recognition engine failed or is not
// configured. Callers are expected to degrade to an empty draft rather than
// surface this as a hard error.
var ErrUnavailable = errors.New("text recognition unavailable")

// Recognizer extracts raw text from an uploaded document.
type Recognizer interface {
	Recognize(ctx context.Context, document io.Reader, filename string) (string, error)
}

// Disabled is the Recognizer used when no engine is configured.
type Disabled struct{}

func (Disabled) Recognize(ctx context.Context, document io.Reader, filename string) (string, error) {
	return "", ErrUnavailable
}

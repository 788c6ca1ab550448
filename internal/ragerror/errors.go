// Package ragerror defines the typed errors surfaced by the question
// answering engine and its collaborators.
package ragerror

import "fmt"

// EmptyInputError indicates that an embedding request contained no usable
// text after trimming and dropping empty strings.
type EmptyInputError struct {
	Count int // size of the original input before filtering
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("no non-empty texts to embed (received %d inputs)", e.Count)
}

// EmbeddingError indicates the embedding collaborator returned no usable
// vector for a non-empty text. Fatal to the current request only.
type EmbeddingError struct {
	Text string
	Err  error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed for %q: %v", truncate(e.Text, 60), e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

// ExtractionError indicates the intent extractor's output could not be used.
// The classifier recovers from it by defaulting to a plain search intent, so
// it never reaches the caller of the engine.
type ExtractionError struct {
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("intent extraction failed (raw=%q): %v", truncate(e.Raw, 60), e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// GenerationError indicates the text generation collaborator returned no
// usable answer. The request fails rather than returning an empty answer.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("answer generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// LoadError indicates the record store could not be built at startup.
// This is fatal: the process must not become ready.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load ledger from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IndexBuildError indicates the similarity index could not be built at
// startup, usually because of mismatched vector dimensions.
type IndexBuildError struct {
	Reason string
}

func (e *IndexBuildError) Error() string {
	return fmt.Sprintf("failed to build similarity index: %s", e.Reason)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

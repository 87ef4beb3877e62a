package ingest

import "fmt"

// Kind classifies an ingestion failure so the UI can map it to a stable,
// human-readable message category.
type Kind int

const (
	// KindFormat: unsupported file type.
	KindFormat Kind = iota
	// KindSize: file exceeds the maximum byte size.
	KindSize
	// KindDecode: bytes cannot be rasterized.
	KindDecode
	// KindProcessing: unexpected failure during resample/extraction.
	KindProcessing
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindSize:
		return "size"
	case KindDecode:
		return "decode"
	case KindProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Error is a typed ingestion failure carrying the file it relates to.
type Error struct {
	Kind    Kind
	Message string
	File    string
	Err     error
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.File, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, file, format string, args ...any) *Error {
	return &Error{Kind: kind, File: file, Message: fmt.Sprintf(format, args...)}
}

package models

import "errors"

// Request-level failure kinds. These never touch knowledge base state and
// are never retried inside the service: identical input cannot yield a
// different outcome.
var (
	// ErrDocumentExtraction means the uploaded bytes could not be read as
	// a text-bearing PDF at all.
	ErrDocumentExtraction = errors.New("document extraction failed")

	// ErrEmptyEvidence means the document was readable but zero valid
	// course rows were extracted from it.
	ErrEmptyEvidence = errors.New("no valid courses extracted from document")
)

// ConfigurationError rejects an invalid AHP weight triple before any file
// or document work happens.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid AHP configuration: " + e.Reason
}

// Package carbonerror defines the typed errors shared across the analysis
// pipeline.
package carbonerror

import "fmt"

// ConfigurationError reports a missing or invalid entry in the emission
// factors table. It is fatal: a calculation session must not start without a
// complete table.
type ConfigurationError struct {
	Key  string
	File string
}

func (e *ConfigurationError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("emission factors configuration error: missing or invalid entry '%s' in %s", e.Key, e.File)
	}
	return fmt.Sprintf("emission factors configuration error: missing or invalid entry '%s'", e.Key)
}

// ValidationError reports a rejected input row during ingestion. Rejections
// are logged and skipped, they never abort the run.
type ValidationError struct {
	Row    int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: invalid %s: %s", e.Row, e.Field, e.Reason)
}

// ClassificationError reports that the classifier adapter failed to produce a
// usable structured response for a batch. The pipeline recovers by assigning
// the fallback category to the whole batch.
type ClassificationError struct {
	BatchSize int
	Err       error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed for batch of %d transactions: %v", e.BatchSize, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

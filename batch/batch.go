// Package batch runs the overlay over a list of uploaded PDFs, one document at a time,
// reporting progress at the end of every batch.
package batch

import (
	"errors"
	"fmt"

	"pdf_overlay/pdf"
)

const (
	// DefaultBatchSize is the number of documents between progress updates
	DefaultBatchSize = 100

	// MinBatchSize and MaxBatchSize bound the batch size
	MinBatchSize = 1
	MaxBatchSize = 300

	// DefaultOutputSuffix is appended to each output file stem
	DefaultOutputSuffix = "_overlay"
)

// ErrNoInputs is returned when Run is called without documents.
var ErrNoInputs = errors.New("no PDF documents to process")

// Applier stamps an image onto one PDF document.
type Applier interface {
	Apply(image, document []byte, opts pdf.Options) ([]byte, error)
}

// Input is one uploaded document. Load is called once, when the document's turn comes.
type Input struct {
	Name string
	Load func() ([]byte, error)
}

// Result is one processed document.
type Result struct {
	Name string
	PDF  []byte
}

// Progress is reported after every batch.
type Progress struct {
	Batch   int
	Batches int
	Done    int
	Total   int
}

// ProgressFunc receives progress updates. It may be nil.
type ProgressFunc func(Progress)

// Settings is the immutable configuration of one run.
type Settings struct {
	Options      pdf.Options
	BatchSize    int
	OutputSuffix string
}

// DefaultSettings returns the settings used when the caller sets nothing.
func DefaultSettings() Settings {
	return Settings{
		Options:      pdf.DefaultOptions(),
		BatchSize:    DefaultBatchSize,
		OutputSuffix: DefaultOutputSuffix,
	}
}

// Validate checks the overlay options and the batch size.
func (s Settings) Validate() error {
	if err := s.Options.Validate(); err != nil {
		return err
	}
	if s.BatchSize < MinBatchSize || s.BatchSize > MaxBatchSize {
		return fmt.Errorf("%w: batch size %d outside %d-%d", pdf.ErrInvalidOption, s.BatchSize, MinBatchSize, MaxBatchSize)
	}
	return nil
}

// FileError tags a failure with the document it happened in.
type FileError struct {
	Name  string
	Index int
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Run applies the overlay to every input in order. The first failure stops the run and
// no results are returned.
func Run(image []byte, inputs []Input, settings Settings, applier Applier, progress ProgressFunc) ([]Result, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	total := len(inputs)
	if total == 0 {
		return nil, ErrNoInputs
	}

	batches := (total + settings.BatchSize - 1) / settings.BatchSize
	results := make([]Result, 0, total)

	for b := 0; b < batches; b++ {
		start := b * settings.BatchSize
		end := min(start+settings.BatchSize, total)

		for i := start; i < end; i++ {
			res, err := process(image, inputs[i], settings, applier)
			if err != nil {
				return nil, &FileError{Name: inputs[i].Name, Index: i, Err: err}
			}
			results = append(results, res)
		}

		if progress != nil {
			progress(Progress{Batch: b + 1, Batches: batches, Done: end, Total: total})
		}
	}

	return results, nil
}

func process(image []byte, in Input, settings Settings, applier Applier) (Result, error) {
	data, err := in.Load()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read upload: %w", err)
	}
	out, err := applier.Apply(image, data, settings.Options)
	if err != nil {
		return Result{}, err
	}
	return Result{Name: OutputName(in.Name, settings.OutputSuffix), PDF: out}, nil
}

package api

import (
	"fmt"

	"pdf_overlay/batch"
	"pdf_overlay/pdf"
)

// overlayForm carries the optional settings posted with the uploads.
// Fields left out of the request fall back to the configured defaults.
type overlayForm struct {
	Scale     *int    `form:"scale" binding:"omitempty,min=1,max=100"`
	Opacity   *int    `form:"opacity" binding:"omitempty,min=0,max=100"`
	Position  string  `form:"position"`
	Scope     string  `form:"scope"`
	BatchSize *int    `form:"batch_size" binding:"omitempty,min=1,max=300"`
	Suffix    *string `form:"suffix" binding:"omitempty,max=64"`
}

// settings merges the form over defaults and validates the result.
func (f overlayForm) settings(defaults batch.Settings) (batch.Settings, error) {
	s := defaults
	if f.Scale != nil {
		s.Options.ScalePercent = *f.Scale
	}
	if f.Opacity != nil {
		s.Options.OpacityPercent = *f.Opacity
	}
	if f.Position != "" {
		pos, err := pdf.ParsePosition(f.Position)
		if err != nil {
			return s, err
		}
		s.Options.Position = pos
	}
	if f.Scope != "" {
		scope, err := pdf.ParseScope(f.Scope)
		if err != nil {
			return s, err
		}
		s.Options.Scope = scope
	}
	if f.BatchSize != nil {
		s.BatchSize = *f.BatchSize
	}
	if f.Suffix != nil {
		if len(*f.Suffix) > MaxSuffixLength {
			return s, fmt.Errorf("%w: suffix longer than %d characters", pdf.ErrInvalidOption, MaxSuffixLength)
		}
		s.OutputSuffix = *f.Suffix
	}
	return s, s.Validate()
}

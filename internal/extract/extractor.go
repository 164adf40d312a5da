// Package extract filters raw option values from the demo page's select
// control down to the deduplicated set of downloadable score URLs.
package extract

import (
	"strings"

	"github.com/scorefetch/scorefetch/internal/model"
)

// Extractor filters option values by file suffix and collapses duplicates.
//
// Example:
//
//	ex := extract.New([]string{".xml", ".mxl"})
//	set := ex.Extract([]string{"a.xml", "b.mxl", "c.pdf", "a.xml"})
//	// set contains exactly {"a.xml", "b.mxl"}
type Extractor struct {
	suffixes []string
}

// New creates an Extractor that retains values ending in one of the given
// suffixes. The suffix match is case-sensitive.
func New(suffixes []string) *Extractor {
	return &Extractor{suffixes: suffixes}
}

// Extract builds the RefSet from raw option values.
//
// Empty values and values with an unrecognized suffix are discarded.
// Duplicate URLs collapse to a single ref. An empty input yields an empty
// set, which is not an error.
func (e *Extractor) Extract(values []string) *model.RefSet {
	set := model.NewRefSet()
	for _, v := range values {
		if v == "" {
			continue
		}
		if e.matches(v) {
			set.Add(v)
		}
	}
	return set
}

func (e *Extractor) matches(value string) bool {
	for _, suffix := range e.suffixes {
		if strings.HasSuffix(value, suffix) {
			return true
		}
	}
	return false
}

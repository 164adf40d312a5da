package model

import (
	"net/url"
	"path"
	"sort"
	"strings"

	ioutils "github.com/scorefetch/scorefetch/internal/io"
)

// ScoreRef represents one downloadable score file discovered on the demo page.
//
// ScoreRef contains:
//   - The URL the file is served from
//   - The derived local filename (the final path segment of the URL)
//
// The filename is computed once when creating a ref via NewScoreRef and the
// ref is never mutated afterwards.
//
// Example:
//
//	ref := NewScoreRef("https://host/demo/sheets/sonatina.mxl")
//	// ref.Filename = "sonatina.mxl"
type ScoreRef struct {
	// URL is the absolute URL the score file is served from.
	URL string

	// Filename is the derived local filename, sanitized for the filesystem.
	Filename string
}

// NewScoreRef creates a ScoreRef with its filename derived from the URL.
//
// The filename is the final path segment of the URL with any query or
// fragment stripped. Characters that are invalid in filenames are replaced
// with underscores. If the URL cannot be parsed, everything after the last
// slash of the raw string is used instead.
func NewScoreRef(rawURL string) ScoreRef {
	return ScoreRef{
		URL:      rawURL,
		Filename: deriveFilename(rawURL),
	}
}

// deriveFilename computes the local filename for a score URL.
func deriveFilename(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		if base := path.Base(u.Path); base != "." && base != "/" {
			return ioutils.SanitizeFileName(base)
		}
	}

	// Unparseable URL: fall back to the substring after the last slash.
	if i := strings.LastIndex(rawURL, "/"); i >= 0 {
		return ioutils.SanitizeFileName(rawURL[i+1:])
	}

	return ioutils.SanitizeFileName(rawURL)
}

// RefSet is the deduplicated collection of score references.
//
// Identity is exact URL string equality: no case folding or other
// normalization is applied, so "A.xml" and "a.xml" are distinct members.
//
// Example:
//
//	set := NewRefSet()
//	set.Add("https://host/a.xml")
//	set.Add("https://host/a.xml") // no-op, already present
//	set.Len()                     // 1
type RefSet struct {
	refs map[string]ScoreRef
}

// NewRefSet creates an empty RefSet.
func NewRefSet() *RefSet {
	return &RefSet{refs: make(map[string]ScoreRef)}
}

// Add inserts a score URL into the set. Adding a URL that is already
// present is a no-op.
func (s *RefSet) Add(rawURL string) {
	if _, ok := s.refs[rawURL]; ok {
		return
	}
	s.refs[rawURL] = NewScoreRef(rawURL)
}

// Contains reports whether the exact URL string is in the set.
func (s *RefSet) Contains(rawURL string) bool {
	_, ok := s.refs[rawURL]
	return ok
}

// Len returns the number of unique URLs in the set.
func (s *RefSet) Len() int {
	return len(s.refs)
}

// Sorted returns the refs ordered by URL. The set itself carries no
// ordering; sorting pins the download order so runs are deterministic.
func (s *RefSet) Sorted() []ScoreRef {
	refs := make([]ScoreRef, 0, len(s.refs))
	for _, ref := range s.refs {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].URL < refs[j].URL
	})
	return refs
}

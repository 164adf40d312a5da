// Package model defines the core data structures used throughout scorefetch.
//
// # ScoreRef
//
// ScoreRef represents one downloadable score file with its derived filename:
//
//	ref := model.NewScoreRef("https://host/sheets/sonatina.mxl")
//	fmt.Println(ref.Filename) // "sonatina.mxl"
//
// # RefSet
//
// RefSet is the deduplicated collection of score references produced by
// extraction and consumed by the download manager:
//
//	set := model.NewRefSet()
//	set.Add(url)
//	for _, ref := range set.Sorted() {
//	    fmt.Println(ref.URL)
//	}
//
// Uniqueness is by exact URL string equality; iteration order is pinned to
// sorted URL order for deterministic downloads.
package model

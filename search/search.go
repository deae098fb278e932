// Package search computes which words and lesson sections match a query.
// Nothing is cached: every query change recomputes the result from scratch.
package search

import (
	"strings"

	"github.com/lai323/lexis/lessons"
	"github.com/lai323/lexis/textnorm"
)

// Section is the visibility of one lesson. Matches is parallel to the
// lesson's words; non-matching words stay in place and are only hidden.
type Section struct {
	Lesson  *lessons.Lesson
	Matches []bool
	Visible bool
}

type Result struct {
	Query    string
	Sections []Section
	Matched  int
}

// Hit is a matching word with its lesson.
type Hit struct {
	Lesson *lessons.Lesson
	Word   *lessons.Word
}

// Filter matches query against the Greek and Russian fields of every word.
// An empty query matches everything.
func Filter(query string, ls []lessons.Lesson) Result {
	q := textnorm.Normalize(strings.TrimSpace(query))
	res := Result{Query: query, Sections: make([]Section, len(ls))}
	for i := range ls {
		l := &ls[i]
		sec := Section{Lesson: l, Matches: make([]bool, len(l.Words))}
		for j, w := range l.Words {
			if Match(q, w) {
				sec.Matches[j] = true
				sec.Visible = true
				res.Matched++
			}
		}
		res.Sections[i] = sec
	}
	return res
}

// Match reports whether a word matches an already normalized query.
func Match(normalizedQuery string, w lessons.Word) bool {
	if normalizedQuery == "" {
		return true
	}
	return strings.Contains(textnorm.Normalize(w.Greek), normalizedQuery) ||
		strings.Contains(textnorm.Normalize(w.Russian), normalizedQuery)
}

// Hits lists matching words in dataset order.
func (r Result) Hits() []Hit {
	hits := make([]Hit, 0, r.Matched)
	for _, sec := range r.Sections {
		if !sec.Visible {
			continue
		}
		for j, ok := range sec.Matches {
			if ok {
				hits = append(hits, Hit{Lesson: sec.Lesson, Word: &sec.Lesson.Words[j]})
			}
		}
	}
	return hits
}

// VisibleSections counts sections with at least one match.
func (r Result) VisibleSections() int {
	n := 0
	for _, sec := range r.Sections {
		if sec.Visible {
			n++
		}
	}
	return n
}

// Package pagespec parses user supplied page selections such as "1-3,5,9-9".
//
// Input is one-based, results are zero-based page indices. Parsing rejects the
// whole expression on the first malformed token; it never clamps or skips.
package pagespec

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrOutOfRange is wrapped by Validate when an index does not address a page.
var ErrOutOfRange = errors.New("page out of range")

// SyntaxError describes the first token of a page spec that could not be parsed.
type SyntaxError struct {
	Spec   string
	Token  string
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid page spec %q: %s", e.Spec, e.Reason)
	}
	return fmt.Sprintf("invalid page spec %q: token %q: %s", e.Spec, e.Token, e.Reason)
}

// Sequence is an ordered list of zero-based page indices. Duplicates are kept.
type Sequence []int

// Set is an unordered collection of zero-based page indices.
type Set map[int]struct{}

// Has reports whether i is a member of s.
func (s Set) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Sorted returns the members of s in ascending order.
func (s Set) Sorted() Sequence {
	out := make(Sequence, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Parse turns spec into a Sequence, keeping token order. Ranges expand in
// ascending order.
func Parse(spec string) (Sequence, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, &SyntaxError{Spec: spec, Reason: "empty"}
	}
	var out Sequence
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, &SyntaxError{Spec: spec, Reason: "empty token"}
		}
		if strings.Contains(tok, "-") {
			bounds := strings.SplitN(tok, "-", 2)
			start, err := pageNumber(bounds[0])
			if err != nil {
				return nil, &SyntaxError{Spec: spec, Token: tok, Reason: err.Error()}
			}
			end, err := pageNumber(bounds[1])
			if err != nil {
				return nil, &SyntaxError{Spec: spec, Token: tok, Reason: err.Error()}
			}
			if start > end {
				return nil, &SyntaxError{Spec: spec, Token: tok, Reason: "range start after end"}
			}
			for p := start; p <= end; p++ {
				out = append(out, p-1)
			}
			continue
		}
		p, err := pageNumber(tok)
		if err != nil {
			return nil, &SyntaxError{Spec: spec, Token: tok, Reason: err.Error()}
		}
		out = append(out, p-1)
	}
	return out, nil
}

// ParseSet is Parse with order and duplicates discarded.
func ParseSet(spec string) (Set, error) {
	seq, err := Parse(spec)
	if err != nil {
		return nil, err
	}
	set := make(Set, len(seq))
	for _, i := range seq {
		set[i] = struct{}{}
	}
	return set, nil
}

// Validate checks that every index addresses one of pageCount pages.
func (s Sequence) Validate(pageCount int) error {
	for _, i := range s {
		if i < 0 || i >= pageCount {
			return fmt.Errorf("page %d of %d: %w", i+1, pageCount, ErrOutOfRange)
		}
	}
	return nil
}

// Validate checks that every index addresses one of pageCount pages.
func (s Set) Validate(pageCount int) error {
	return s.Sorted().Validate(pageCount)
}

func pageNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing page number")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a page number", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a page number", s)
	}
	if n < 1 {
		return 0, errors.New("page numbers start at 1")
	}
	return n, nil
}

// Package pagination splits an ordered result set into fixed-size pages.
//
// Invalid page numbers never surface as errors to request handlers: Resolve
// falls back to the first page for input that is not an integer and to the
// last page for input that is out of range.
package pagination

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrPageNotAnInteger is returned by ValidateNumber for non-numeric input.
	ErrPageNotAnInteger = errors.New("page number is not an integer")
	// ErrEmptyPage is returned by ValidateNumber for numbers outside 1..NumPages.
	ErrEmptyPage = errors.New("page contains no results")
)

// Paginator computes page bounds over Count items.
type Paginator struct {
	Count   int
	PerPage int
}

// New returns a paginator. A non-positive perPage is treated as 1.
func New(count, perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return &Paginator{Count: count, PerPage: perPage}
}

// NumPages is the total page count. An empty result set still has one page.
func (p *Paginator) NumPages() int {
	if p.Count == 0 {
		return 1
	}
	return (p.Count + p.PerPage - 1) / p.PerPage
}

// ValidateNumber parses raw as a page number and checks it is in range.
func (p *Paginator) ValidateNumber(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, ErrEmptyPage
		}
		return 0, ErrPageNotAnInteger
	}
	if n < 1 || n > p.NumPages() {
		return 0, ErrEmptyPage
	}
	return n, nil
}

// Resolve maps any raw page value to a valid page number.
// Absent or non-integer input gives the first page; out-of-range input gives the last.
func (p *Paginator) Resolve(raw string) int {
	if strings.TrimSpace(raw) == "" {
		return 1
	}
	n, err := p.ValidateNumber(raw)
	switch {
	case errors.Is(err, ErrPageNotAnInteger):
		return 1
	case errors.Is(err, ErrEmptyPage):
		return p.NumPages()
	}
	return n
}

// Bounds returns the offset and limit of page number. number must be valid.
func (p *Paginator) Bounds(number int) (offset, limit int) {
	offset = (number - 1) * p.PerPage
	limit = p.PerPage
	if offset+limit > p.Count {
		limit = p.Count - offset
	}
	if limit < 0 {
		limit = 0
	}
	return offset, limit
}

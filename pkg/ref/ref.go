// Package ref implements the cell reference codec: conversion between
// column-letter/row-number addresses and their integer form, reference
// normalization, and range expansion.
package ref

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedReferenceError reports text that cannot be decoded into a
// column/row pair.
type MalformedReferenceError struct {
	Text string
}

// Error implements the error interface.
func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("malformed cell reference %q", e.Text)
}

// ColumnToIndex decodes a column letter sequence to its 1-based index.
// Spreadsheet columns form a positional numeral system with no zero digit
// ('A'=1 .. 'Z'=26, then AA=27), which is not plain base-26.
func ColumnToIndex(letters string) (int, error) {
	if letters == "" {
		return 0, &MalformedReferenceError{Text: letters}
	}
	n := 0
	for _, ch := range strings.ToUpper(letters) {
		if ch < 'A' || ch > 'Z' {
			return 0, &MalformedReferenceError{Text: letters}
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n, nil
}

// IndexToColumn encodes a 1-based column index as a letter sequence.
func IndexToColumn(n int) string {
	var sb []byte
	for n > 0 {
		n--
		sb = append([]byte{byte('A' + n%26)}, sb...)
		n /= 26
	}
	return string(sb)
}

// Normalize strips anchor markers, uppercases, and validates the result
// against the <letters><digits> shape. The normalized form is the lookup
// key for cells everywhere in the engine.
func Normalize(r string) (string, error) {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(r), "$", ""))
	letters, digits, ok := splitRef(s)
	if !ok {
		return "", &MalformedReferenceError{Text: r}
	}
	return letters + digits, nil
}

// Split decomposes a normalized reference into its column index and row
// number.
func Split(r string) (col, row int, err error) {
	norm, err := Normalize(r)
	if err != nil {
		return 0, 0, err
	}
	letters, digits, _ := splitRef(norm)
	col, err = ColumnToIndex(letters)
	if err != nil {
		return 0, 0, err
	}
	row, err = strconv.Atoi(digits)
	if err != nil || row < 1 {
		return 0, 0, &MalformedReferenceError{Text: r}
	}
	return col, row, nil
}

// ExpandRange enumerates the rectangle spanned by two corner references in
// row-major order. The bounding box is computed from both corners, so the
// result is independent of which corner was written first.
func ExpandRange(a, b string) ([]string, error) {
	ca, ra, err := Split(a)
	if err != nil {
		return nil, err
	}
	cb, rb, err := Split(b)
	if err != nil {
		return nil, err
	}

	c1, c2 := minmax(ca, cb)
	r1, r2 := minmax(ra, rb)

	refs := make([]string, 0, (c2-c1+1)*(r2-r1+1))
	for row := r1; row <= r2; row++ {
		for col := c1; col <= c2; col++ {
			refs = append(refs, IndexToColumn(col)+strconv.Itoa(row))
		}
	}
	return refs, nil
}

// IsCellRef reports whether raw identifier text has the shape of a cell
// reference: optional anchor, 1-3 letters, optional anchor, digits. Longer
// letter runs are bare names, not references.
func IsCellRef(text string) bool {
	s := text
	if strings.HasPrefix(s, "$") {
		s = s[1:]
	}
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i < 1 || i > 3 {
		return false
	}
	rest := s[i:]
	if strings.HasPrefix(rest, "$") {
		rest = rest[1:]
	}
	if rest == "" {
		return false
	}
	for j := 0; j < len(rest); j++ {
		if rest[j] < '0' || rest[j] > '9' {
			return false
		}
	}
	return true
}

// splitRef splits a candidate reference into letters and digits, requiring
// at least one of each and nothing else.
func splitRef(s string) (letters, digits string, ok bool) {
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return "", "", false
	}
	for j := i; j < len(s); j++ {
		if s[j] < '0' || s[j] > '9' {
			return "", "", false
		}
	}
	return s[:i], s[i:], true
}

func isLetter(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

func minmax(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}

/*
Copyright © 2019 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package boxlib

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// String formats b as ((lo) (hi) (type)), for example
// ((0,0) (3,3) (0,0)) for a cell-centered 4×4 box.
func (b Box) String() string {
	return "(" + b.Lo.String() + " " + b.Hi.String() + " " + b.Type.String() + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (b Box) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the output
// of String, with any amount of whitespace between the parts.
func (b *Box) UnmarshalText(text []byte) error {
	bb, err := ParseBox(string(text))
	if err != nil {
		return err
	}
	*b = bb
	return nil
}

// ParseBox parses the output of Box.String.
func ParseBox(s string) (Box, error) {
	var b Box
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return b, fmt.Errorf("boxlib: malformed Box %q", s)
	}
	groups, err := splitGroups(s[1 : len(s)-1])
	if err != nil {
		return b, fmt.Errorf("boxlib: parsing Box %q: %v", s, err)
	}
	if len(groups) != 3 {
		return b, fmt.Errorf("boxlib: Box %q has %d parts; want 3", s, len(groups))
	}
	if b.Lo, err = parseIntVect(groups[0]); err != nil {
		return b, err
	}
	if b.Hi, err = parseIntVect(groups[1]); err != nil {
		return b, err
	}
	if b.Type, err = parseIndexType(groups[2]); err != nil {
		return b, err
	}
	return b, nil
}

// ParseBoxes parses a sequence of boxes in the form written by
// Box.String, separated by whitespace.
func ParseBoxes(s string) ([]Box, error) {
	groups, err := splitGroups(s)
	if err != nil {
		return nil, fmt.Errorf("boxlib: parsing boxes: %v", err)
	}
	boxes := make([]Box, len(groups))
	for i, g := range groups {
		if boxes[i], err = ParseBox(g); err != nil {
			return nil, err
		}
	}
	return boxes, nil
}

// splitGroups returns the top-level parenthesized groups of s.
func splitGroups(s string) ([]string, error) {
	var groups []string
	depth, start := 0, -1
	for i, r := range s {
		switch {
		case r == '(':
			if depth == 0 {
				start = i
			}
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ')' at %d", i)
			}
			if depth == 0 {
				groups = append(groups, s[start:i+1])
			}
		case depth == 0 && !unicode.IsSpace(r):
			return nil, fmt.Errorf("unexpected %q at %d", r, i)
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '('")
	}
	return groups, nil
}

// String formats ba in the checkpoint format written by Write.
func (ba *BoxArray) String() string {
	var buf bytes.Buffer
	ba.Write(&buf)
	return buf.String()
}

// Write writes ba in checkpoint format: an opening line holding the number
// of boxes and the signature, one box per line, and a closing line.
func (ba *BoxArray) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "(%d %d\n", len(ba.boxes), ba.hashSig)
	for _, b := range ba.boxes {
		fmt.Fprintln(bw, b.String())
	}
	fmt.Fprintln(bw, ")")
	return bw.Flush()
}

// ReadBoxArray reads a BoxArray written by BoxArray.Write. The signature in
// the header is checked against the signature of the boxes read.
func ReadBoxArray(r io.Reader) (*BoxArray, error) {
	br := bufio.NewReader(r)
	var n int
	var sig uint64
	if err := expectRune(br, '('); err != nil {
		return nil, fmt.Errorf("boxlib: reading BoxArray header: %v", err)
	}
	if _, err := fmt.Fscan(br, &n, &sig); err != nil {
		return nil, fmt.Errorf("boxlib: reading BoxArray header: %v", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("boxlib: BoxArray length %d is negative", n)
	}
	// The count is not trusted until the boxes are read.
	boxes := make([]Box, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		s, err := readGroup(br)
		if err != nil {
			return nil, fmt.Errorf("boxlib: reading box %d of %d: %v", i, n, err)
		}
		b, err := ParseBox(s)
		if err != nil {
			return nil, fmt.Errorf("boxlib: reading box %d of %d: %v", i, n, err)
		}
		boxes = append(boxes, b)
	}
	if err := expectRune(br, ')'); err != nil {
		return nil, fmt.Errorf("boxlib: reading BoxArray trailer: %v", err)
	}
	ba := BoxArrayFromBoxes(boxes...)
	if ba.hashSig != sig {
		return nil, fmt.Errorf("boxlib: BoxArray signature mismatch: header has %d, boxes give %d", sig, ba.hashSig)
	}
	return ba, nil
}

func skipSpace(br *bufio.Reader) error {
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(r) {
			return br.UnreadRune()
		}
	}
}

func expectRune(br *bufio.Reader, want rune) error {
	if err := skipSpace(br); err != nil {
		return err
	}
	r, _, err := br.ReadRune()
	if err != nil {
		return err
	}
	if r != want {
		return fmt.Errorf("found %q; want %q", r, want)
	}
	return nil
}

// readGroup reads one balanced parenthesized group.
func readGroup(br *bufio.Reader) (string, error) {
	if err := skipSpace(br); err != nil {
		return "", err
	}
	var sb strings.Builder
	depth := 0
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			return "", err
		}
		if sb.Len() == 0 && r != '(' {
			return "", fmt.Errorf("found %q; want '('", r)
		}
		sb.WriteRune(r)
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return sb.String(), nil
			}
		}
	}
}

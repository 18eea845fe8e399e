// Package layout holds the storage conventions shared by every carousel
// backend: how blobs are named and referenced, and how the carousel document
// is encoded.
package layout

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ReferencePrefix is prepended to a stored name to form its reference.
const ReferencePrefix = "/uploads/"

var whitespaceRun = regexp.MustCompile(`\s+`)

// SanitizeName replaces whitespace runs with a single underscore and drops
// any directory component.
func SanitizeName(name string) string {
	name = whitespaceRun.ReplaceAllString(name, "_")
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	switch name {
	case "", ".", "..", "/":
		return "file"
	}
	return name
}

// Reference returns the locator for a stored name.
func Reference(storedName string) string {
	return ReferencePrefix + storedName
}

// StoredName extracts the stored name from a reference. Only the basename is
// kept so a reference can never resolve outside the storage root. It returns
// "" when nothing usable remains.
func StoredName(reference string) string {
	name := path.Base(strings.ReplaceAll(reference, `\`, "/"))
	switch name {
	case "", ".", "..", "/":
		return ""
	}
	return name
}

// Sequencer hands out strictly increasing millisecond tokens, so two names
// generated in the same millisecond still differ.
type Sequencer struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewSequencer returns a Sequencer driven by the wall clock.
func NewSequencer() *Sequencer {
	return &Sequencer{now: time.Now}
}

// Next returns the next token.
func (s *Sequencer) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now().UnixMilli()
	if t <= s.last {
		t = s.last + 1
	}
	s.last = t
	return t
}

// NewName builds "<token>-<sanitized original name>".
func (s *Sequencer) NewName(originalName string) string {
	return strconv.FormatInt(s.Next(), 10) + "-" + SanitizeName(originalName)
}

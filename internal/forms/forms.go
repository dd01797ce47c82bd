// Package forms implements the section form controllers: each one loads a
// text draft from the store, validates it on submit, normalizes the rows
// and replaces the matching section of the document. Validation failures
// are values, not Go errors; nothing here panics or aborts.
package forms

import (
	"errors"
	"regexp"
	"strings"
)

// Validation rule patterns, shared across sections.
var (
	namePattern     = regexp.MustCompile(`^[A-Za-z][A-Za-z '.-]*$`)
	languagePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z '-]*$`)
	emailPattern    = regexp.MustCompile(`.+@.+\..+`)
	digitsPattern   = regexp.MustCompile(`^\d+$`)
	urlPattern      = regexp.MustCompile(`^(https?://|www\.)`)
)

// ErrIndexOutOfRange is returned by row operations addressing a row the
// draft does not have.
var ErrIndexOutOfRange = errors.New("entry index out of range")

// Errors maps a field path (e.g. "entries.0.startDate") to a message. An
// empty map means the draft is valid.
type Errors map[string]string

// Add records a message for a field path, keeping the first message when a
// field fails more than one rule.
func (e Errors) Add(path, message string) {
	if _, exists := e[path]; !exists {
		e[path] = message
	}
}

// OK reports whether no field failed.
func (e Errors) OK() bool {
	return len(e) == 0
}

func validName(value string) bool {
	return namePattern.MatchString(value)
}

func validEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// validPhone accepts the empty string; a phone, once given, is digits only.
func validPhone(value string) bool {
	return value == "" || digitsPattern.MatchString(value)
}

// validURL accepts the empty string; otherwise the value must start with
// http://, https:// or www.
func validURL(value string) bool {
	return value == "" || urlPattern.MatchString(value)
}

func trimmed(value string) string {
	return strings.TrimSpace(value)
}

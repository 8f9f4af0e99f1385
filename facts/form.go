// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package facts

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/today-i-learned/category"
	"github.com/danielhkuo/today-i-learned/models"
)

// DefaultSource pre-fills the source field of a freshly opened form
const DefaultSource = "http://example.com"

var (
	ErrTextEmpty       = errors.New("text is required")
	ErrTextTooLong     = fmt.Errorf("text must be at most %d characters", models.MaxTextLength)
	ErrInvalidSource   = errors.New("source must be an http or https URL")
	ErrCategoryEmpty   = errors.New("category is required")
	ErrUnknownCategory = errors.New("unknown category")
)

// Form holds the fields of the new fact form
type Form struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

// EmptyMessage is shown in place of an empty list for the given filter
func EmptyMessage(filter string) string {
	if filter == category.All || filter == "" {
		return "No facts yet! Create the first one."
	}
	return fmt.Sprintf("No facts for %s yet! Create the first one.", filter)
}

func NewForm() Form {
	return Form{Source: DefaultSource}
}

// Remaining is the number of characters left before the text limit.
// Negative once the limit is exceeded.
func (f Form) Remaining() int {
	return models.MaxTextLength - utf8.RuneCountInString(f.Text)
}

// Validate returns the first rule the form breaks, or nil
func (f Form) Validate() error {
	if f.Text == "" {
		return ErrTextEmpty
	}
	if utf8.RuneCountInString(f.Text) > models.MaxTextLength {
		return ErrTextTooLong
	}
	if !IsValidHTTPURL(f.Source) {
		return ErrInvalidSource
	}
	if f.Category == "" {
		return ErrCategoryEmpty
	}
	if !category.Valid(f.Category) {
		return ErrUnknownCategory
	}
	return nil
}

func (f Form) newFact() models.NewFact {
	return models.NewFact{Text: f.Text, Source: strings.TrimSpace(f.Source), Category: f.Category}
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL with a host.
// Surrounding whitespace is ignored; "http:/host" has no host and fails.
func IsValidHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	// url.Parse lower-cases the scheme
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

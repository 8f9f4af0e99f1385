// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "fmt"

// MaxTextLength is the longest fact text accepted by the form (in characters)
const MaxTextLength = 200

// FetchLimit caps the number of facts returned by one list query
const FetchLimit = 1000

// Counter names one of the three vote counters on a fact
type Counter int

const (
	Interesting Counter = iota
	Mindblowing
	False
)

// Counters lists every counter in display order
var Counters = []Counter{Interesting, Mindblowing, False}

// Field returns the wire/column name of the counter
func (c Counter) Field() string {
	switch c {
	case Interesting:
		return "votesInteresting"
	case Mindblowing:
		return "votesMindblowing"
	case False:
		return "votesFalse"
	}
	return ""
}

// Label is the short name used in URLs and the CLI
func (c Counter) Label() string {
	switch c {
	case Interesting:
		return "interesting"
	case Mindblowing:
		return "mindblowing"
	case False:
		return "false"
	}
	return ""
}

func (c Counter) String() string {
	return c.Field()
}

// Of returns the value of this counter on f
func (c Counter) Of(f Fact) int {
	switch c {
	case Interesting:
		return f.VotesInteresting
	case Mindblowing:
		return f.VotesMindblowing
	case False:
		return f.VotesFalse
	}
	return 0
}

// ParseCounter accepts either the field name ("votesFalse") or the label ("false")
func ParseCounter(s string) (Counter, error) {
	for _, c := range Counters {
		if s == c.Field() || s == c.Label() {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown counter %q", s)
}

// MarshalText lets counters travel as their field name in JSON
func (c Counter) MarshalText() ([]byte, error) {
	if c.Field() == "" {
		return nil, fmt.Errorf("invalid counter %d", int(c))
	}
	return []byte(c.Field()), nil
}

func (c *Counter) UnmarshalText(b []byte) error {
	parsed, err := ParseCounter(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Domain types

// Fact is a row of the facts table. The server owns id and the counters.
type Fact struct {
	ID               int64  `json:"id" yaml:"id"`
	Text             string `json:"text" yaml:"text"`
	Source           string `json:"source" yaml:"source"`
	Category         string `json:"category" yaml:"category"`
	VotesInteresting int    `json:"votesInteresting" yaml:"votesInteresting"`
	VotesMindblowing int    `json:"votesMindblowing" yaml:"votesMindblowing"`
	VotesFalse       int    `json:"votesFalse" yaml:"votesFalse"`
	CreatedIn        int    `json:"createdIn" yaml:"createdIn"`
}

// IsDisputed reports whether false votes outnumber the positive ones
func (f Fact) IsDisputed() bool {
	return f.VotesInteresting+f.VotesMindblowing < f.VotesFalse
}

// NewFact is the insert payload; id and counters are left to server defaults
type NewFact struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

type Category struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Request types

type SetCategoryRequest struct {
	Category string `json:"category"`
}

type SubmitFactRequest struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

// VoteRequest leaves Counter nil when the field is absent
type VoteRequest struct {
	Counter *Counter `json:"counter"`
}

type SetFormRequest struct {
	Show bool `json:"show"`
}

// Response types

type AlertResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type FactView struct {
	Fact
	Disputed bool `json:"disputed"`
	Updating bool `json:"updating"`
}

type StateResponse struct {
	Facts           []FactView      `json:"facts"`
	Count           int             `json:"count"`
	IsLoading       bool            `json:"is_loading"`
	CurrentCategory string          `json:"current_category"`
	ShowForm        bool            `json:"show_form"`
	IsUploading     bool            `json:"is_uploading"`
	Alerts          []AlertResponse `json:"alerts"`
}

type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/today-i-learned/models"
)

var (
	ErrNotFound     = errors.New("fact not found")
	ErrEmptyResult  = errors.New("store returned no rows")
	ErrInvalidQuery = errors.New("invalid query")
)

// Store is the boundary to the table of facts. Every write returns the
// row as the server stored it.
type Store interface {
	Select(ctx context.Context, q Query) ([]models.Fact, error)
	Insert(ctx context.Context, f models.NewFact) (models.Fact, error)
	UpdateByID(ctx context.Context, id int64, p Patch) (models.Fact, error)
}

// Query describes a filtered, ordered, bounded select
type Query struct {
	Category   string // empty selects every category
	OrderBy    models.Counter
	Descending bool
	Limit      int // <= 0 means unbounded
}

// Patch sets one counter to an absolute value
type Patch struct {
	Counter models.Counter
	Value   int
}

func (q Query) validate() error {
	if q.OrderBy.Field() == "" {
		return ErrInvalidQuery
	}
	return nil
}

func (p Patch) validate() error {
	if p.Counter.Field() == "" || p.Value < 0 {
		return ErrInvalidQuery
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/danielhkuo/today-i-learned/models"
)

const factColumns = `id, text, source, category, "votesInteresting", "votesMindblowing", "votesFalse", "createdIn"`

// SQLStore keeps facts in PostgreSQL or SQLite. Both dialects accept the
// $n placeholders and RETURNING clauses used here.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Select(ctx context.Context, q Query) ([]models.Fact, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	query := `SELECT ` + factColumns + ` FROM facts`
	args := []interface{}{}
	if q.Category != "" {
		args = append(args, q.Category)
		query += ` WHERE category = $` + strconv.Itoa(len(args))
	}

	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}
	query += ` ORDER BY "` + q.OrderBy.Field() + `" ` + direction + `, id ASC`

	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select facts: %w", err)
	}
	defer rows.Close()

	facts := []models.Fact{}
	for rows.Next() {
		f, err := scanFact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fact: %w", err)
		}
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select facts: %w", err)
	}

	return facts, nil
}

func (s *SQLStore) Insert(ctx context.Context, nf models.NewFact) (models.Fact, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO facts (text, source, category)
		VALUES ($1, $2, $3)
		RETURNING `+factColumns,
		nf.Text, nf.Source, nf.Category)

	f, err := scanFact(row)
	if err != nil {
		return models.Fact{}, fmt.Errorf("insert fact: %w", err)
	}
	return f, nil
}

func (s *SQLStore) UpdateByID(ctx context.Context, id int64, p Patch) (models.Fact, error) {
	if err := p.validate(); err != nil {
		return models.Fact{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE facts SET "`+p.Counter.Field()+`" = $1
		WHERE id = $2
		RETURNING `+factColumns,
		p.Value, id)

	f, err := scanFact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Fact{}, ErrNotFound
	}
	if err != nil {
		return models.Fact{}, fmt.Errorf("update fact %d: %w", id, err)
	}
	return f, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanFact(s scanner) (models.Fact, error) {
	var f models.Fact
	err := s.Scan(&f.ID, &f.Text, &f.Source, &f.Category,
		&f.VotesInteresting, &f.VotesMindblowing, &f.VotesFalse, &f.CreatedIn)
	return f, err
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"io"
	"time"

	"github.com/danielhkuo/today-i-learned/db"
)

// Backend types accepted by Open
const (
	TypeREST     = "rest"
	TypePostgres = db.DialectPostgres
	TypeSQLite   = db.DialectSQLite
)

// Options selects and configures the backend built by Open
type Options struct {
	Type        string
	DatabaseURL string // postgres and sqlite
	RESTURL     string
	RESTKey     string
	Table       string // rest only; the SQL schema always uses "facts"
	Timeout     time.Duration
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the configured backend. SQL backends get their schema
// created. The returned Closer releases the connection pool, if any.
func Open(o Options) (Store, io.Closer, error) {
	switch o.Type {
	case TypeREST:
		st, err := NewRESTStore(RESTConfig{
			BaseURL: o.RESTURL,
			APIKey:  o.RESTKey,
			Table:   o.Table,
			Timeout: o.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return st, nopCloser{}, nil

	case TypePostgres, TypeSQLite:
		conn, err := db.Open(o.Type, o.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.CreateSchema(conn, o.Type); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("create schema: %w", err)
		}
		return NewSQLStore(conn), conn, nil
	}

	return nil, nil, fmt.Errorf("unknown store type %q", o.Type)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"testing"

	"github.com/danielhkuo/today-i-learned/models"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantErr  bool
		wantType string
	}{
		{"sqlite", Options{Type: TypeSQLite, DatabaseURL: "file:opentest?mode=memory&cache=shared"}, false, "sql"},
		{"rest", Options{Type: TypeREST, RESTURL: "https://abc.supabase.co", RESTKey: "key"}, false, "rest"},
		{"rest without host", Options{Type: TypeREST, RESTURL: "not a url"}, true, ""},
		{"unknown type", Options{Type: "mongo"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, closer, err := Open(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer closer.Close()

			switch tt.wantType {
			case "sql":
				if _, ok := st.(*SQLStore); !ok {
					t.Errorf("Expected *SQLStore, got %T", st)
				}
			case "rest":
				if _, ok := st.(*RESTStore); !ok {
					t.Errorf("Expected *RESTStore, got %T", st)
				}
			}
		})
	}
}

func TestOpenSQLiteCreatesSchema(t *testing.T) {
	st, closer, err := Open(Options{Type: TypeSQLite, DatabaseURL: "file:openschema?mode=memory&cache=shared"})
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	row, err := st.Insert(context.Background(), models.NewFact{Text: "t", Source: "http://example.com", Category: "news"})
	if err != nil {
		t.Fatalf("Insert on a fresh database failed: %v", err)
	}
	if row.ID == 0 {
		t.Error("Expected an assigned id")
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/today-i-learned/facts"
	"github.com/danielhkuo/today-i-learned/models"
)

// runCLI executes one til invocation against the SQLite file in dir
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	dsn := "file:" + filepath.Join(dir, "facts.db")
	cmd.SetArgs(append([]string{"--store", "sqlite", "--database-url", dsn}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// setupCLI isolates HOME so no user config file is picked up
func setupCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return t.TempDir()
}

func shareFact(t *testing.T, dir, text, cat string) models.Fact {
	t.Helper()

	out, err := runCLI(t, dir, "share", "--text", text, "--category", cat,
		"--source", "https://example.org/til", "-o", "json")
	if err != nil {
		t.Fatalf("share failed: %v", err)
	}

	var f models.Fact
	if err := json.Unmarshal([]byte(out), &f); err != nil {
		t.Fatalf("Failed to decode shared fact: %v (output %q)", err, out)
	}
	return f
}

func TestShareAndList(t *testing.T) {
	dir := setupCLI(t)

	shared := shareFact(t, dir, "Honey never spoils", "science")
	if shared.ID == 0 {
		t.Error("Expected the stored id")
	}
	if shared.Source != "https://example.org/til" {
		t.Errorf("Expected source to be stored, got %q", shared.Source)
	}
	shareFact(t, dir, "Octopuses have three hearts", "science")
	shareFact(t, dir, "The first stock exchange opened in 1602", "finance")

	out, err := runCLI(t, dir, "facts", "-o", "json")
	if err != nil {
		t.Fatalf("facts failed: %v", err)
	}
	var all []models.Fact
	if err := json.Unmarshal([]byte(out), &all); err != nil {
		t.Fatalf("Failed to decode facts: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 facts, got %d", len(all))
	}

	out, err = runCLI(t, dir, "facts", "--category", "finance", "-o", "yaml")
	if err != nil {
		t.Fatalf("facts --category failed: %v", err)
	}
	var finance []models.Fact
	if err := yaml.Unmarshal([]byte(out), &finance); err != nil {
		t.Fatalf("Failed to decode yaml: %v", err)
	}
	if len(finance) != 1 || finance[0].Category != "finance" {
		t.Errorf("Expected only the finance fact, got %+v", finance)
	}
}

func TestFactsTable(t *testing.T) {
	dir := setupCLI(t)

	out, err := runCLI(t, dir, "facts")
	if err != nil {
		t.Fatalf("facts failed: %v", err)
	}
	if !strings.Contains(out, "No facts yet!") {
		t.Errorf("Expected empty message, got %q", out)
	}

	out, err = runCLI(t, dir, "facts", "--category", "news")
	if err != nil {
		t.Fatalf("facts --category failed: %v", err)
	}
	if !strings.Contains(out, "No facts for news yet!") {
		t.Errorf("Expected empty message naming news, got %q", out)
	}

	f := shareFact(t, dir, "Goldfish have a three second memory", "society")
	if _, err := runCLI(t, dir, "vote", itoa(f.ID), "false"); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	out, err = runCLI(t, dir, "facts")
	if err != nil {
		t.Fatalf("facts failed: %v", err)
	}
	for _, want := range []string{"ID", "CATEGORY", "society", "[⛔ DISPUTED] Goldfish", "There are 1 facts in the database"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestVote(t *testing.T) {
	dir := setupCLI(t)
	f := shareFact(t, dir, "Bananas are berries", "science")

	for want := 1; want <= 2; want++ {
		out, err := runCLI(t, dir, "vote", itoa(f.ID), "mindblowing", "-o", "json")
		if err != nil {
			t.Fatalf("vote failed: %v", err)
		}
		var voted models.Fact
		if err := json.Unmarshal([]byte(out), &voted); err != nil {
			t.Fatalf("Failed to decode vote result: %v", err)
		}
		if voted.VotesMindblowing != want {
			t.Errorf("Expected votesMindblowing %d, got %d", want, voted.VotesMindblowing)
		}
	}
}

func TestVoteErrors(t *testing.T) {
	dir := setupCLI(t)
	f := shareFact(t, dir, "Venus spins backwards", "science")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"not listed", []string{"vote", "999", "interesting"}, facts.ErrFactNotFound},
		{"other category", []string{"vote", itoa(f.ID), "interesting", "--category", "news"}, facts.ErrFactNotFound},
		{"unknown category", []string{"vote", itoa(f.ID), "interesting", "--category", "sports"}, facts.ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, dir, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("bad counter", func(t *testing.T) {
		_, err := runCLI(t, dir, "vote", itoa(f.ID), "boring")
		if err == nil || !strings.Contains(err.Error(), "unknown counter") {
			t.Errorf("Expected unknown counter error, got %v", err)
		}
	})

	t.Run("bad id", func(t *testing.T) {
		_, err := runCLI(t, dir, "vote", "abc", "false")
		if err == nil || !strings.Contains(err.Error(), "invalid fact id") {
			t.Errorf("Expected invalid id error, got %v", err)
		}
	})
}

func TestShareValidation(t *testing.T) {
	dir := setupCLI(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"too long", []string{"--text", strings.Repeat("ä", 201), "--category", "science"}, facts.ErrTextTooLong},
		{"bad source", []string{"--text", "Fact", "--category", "science", "--source", "ftp://example.com"}, facts.ErrInvalidSource},
		{"unknown category", []string{"--text", "Fact", "--category", "sports"}, facts.ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, dir, append([]string{"share"}, tt.args...)...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	// Nothing was stored
	out, err := runCLI(t, dir, "facts", "-o", "json")
	if err != nil {
		t.Fatalf("facts failed: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("Expected no facts, got %s", out)
	}
}

func TestShareRequiresFlags(t *testing.T) {
	dir := setupCLI(t)

	if _, err := runCLI(t, dir, "share", "--category", "science"); err == nil {
		t.Error("Expected error without --text")
	}
}

func TestCategories(t *testing.T) {
	dir := setupCLI(t)

	out, err := runCLI(t, dir, "categories")
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 9 {
		t.Fatalf("Expected header and 8 categories, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "technology") || !strings.Contains(lines[1], "#3b82f6") {
		t.Errorf("Expected technology first, got %q", lines[1])
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	dir := setupCLI(t)

	_, err := runCLI(t, dir, "categories", "-o", "xml")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Errorf("Expected unknown format error, got %v", err)
	}
}

func TestConfigFile(t *testing.T) {
	dir := setupCLI(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("output: json\nrest_key: supersecret\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, dir, "--config", cfgPath, "categories")
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	var cats []models.Category
	if err := json.Unmarshal([]byte(out), &cats); err != nil {
		t.Fatalf("Expected json from config file output setting: %v", err)
	}

	out, err = runCLI(t, dir, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if strings.Contains(out, "supersecret") {
		t.Error("Expected rest key to be masked")
	}

	var shown settings
	if err := yaml.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("Failed to decode config: %v", err)
	}
	if shown.Output != "json" || shown.Store != "sqlite" || shown.RESTKey != "********" {
		t.Errorf("Unexpected settings: %+v", shown)
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	dir := setupCLI(t)
	t.Setenv("TIL_OUTPUT", "yaml")

	out, err := runCLI(t, dir, "categories")
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	var cats []models.Category
	if err := yaml.Unmarshal([]byte(out), &cats); err != nil || len(cats) != 8 {
		t.Errorf("Expected yaml categories, got %q (err %v)", out, err)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

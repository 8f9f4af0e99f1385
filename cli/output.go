// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/today-i-learned/facts"
	"github.com/danielhkuo/today-i-learned/models"
)

// Output formats
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func writeFacts(w io.Writer, format, filter string, list []models.Fact) error {
	if format != formatTable {
		return encode(w, format, list)
	}

	if len(list) == 0 {
		_, err := fmt.Fprintln(w, facts.EmptyMessage(filter))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\t👍\t🤯\t⛔\tTEXT")
	for _, f := range list {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\n",
			f.ID, f.Category, f.VotesInteresting, f.VotesMindblowing, f.VotesFalse, factText(f))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nThere are %s facts in the database. Add your own!\n", humanize.Comma(int64(len(list))))
	return err
}

func writeFact(w io.Writer, format string, f models.Fact) error {
	if format != formatTable {
		return encode(w, format, f)
	}
	_, err := fmt.Fprintf(w, "#%d [%s] %s\n  %s\n  👍 %d  🤯 %d  ⛔ %d  (%d)\n",
		f.ID, f.Category, factText(f), f.Source,
		f.VotesInteresting, f.VotesMindblowing, f.VotesFalse, f.CreatedIn)
	return err
}

func writeCategories(w io.Writer, format string, list []models.Category) error {
	if format != formatTable {
		return encode(w, format, list)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCOLOR")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.Color)
	}
	return tw.Flush()
}

func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
}

func factText(f models.Fact) string {
	if f.IsDisputed() {
		return "[⛔ DISPUTED] " + f.Text
	}
	return f.Text
}

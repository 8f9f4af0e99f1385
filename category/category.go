// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package category

import "github.com/danielhkuo/today-i-learned/models"

// All is the filter value that selects every category
const All = "all"

// NeutralColor is used for names missing from the registry
const NeutralColor = "#78716c"

var registry = []models.Category{
	{Name: "technology", Color: "#3b82f6"},
	{Name: "science", Color: "#16a34a"},
	{Name: "finance", Color: "#ef4444"},
	{Name: "society", Color: "#eab308"},
	{Name: "entertainment", Color: "#db2777"},
	{Name: "health", Color: "#14b8a6"},
	{Name: "history", Color: "#f97316"},
	{Name: "news", Color: "#8b5cf6"},
}

var byName = func() map[string]models.Category {
	m := make(map[string]models.Category, len(registry))
	for _, c := range registry {
		m[c.Name] = c
	}
	return m
}()

// List returns a copy of the registry in display order
func List() []models.Category {
	out := make([]models.Category, len(registry))
	copy(out, registry)
	return out
}

// Names returns the registered category names in display order
func Names() []string {
	names := make([]string, len(registry))
	for i, c := range registry {
		names[i] = c.Name
	}
	return names
}

func Lookup(name string) (models.Category, bool) {
	c, ok := byName[name]
	return c, ok
}

// Valid reports whether name is a registered category
func Valid(name string) bool {
	_, ok := byName[name]
	return ok
}

// IsFilter reports whether value can be used as the current filter
func IsFilter(value string) bool {
	return value == All || Valid(value)
}

// Color returns the display color for name
func Color(name string) string {
	if c, ok := byName[name]; ok {
		return c.Color
	}
	return NeutralColor
}

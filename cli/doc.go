// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cli implements the til command: a terminal client that drives a
// facts.Controller over the configured store.
package cli

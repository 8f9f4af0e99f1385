// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package facts holds the state of one visitor's view of the fact list and
every transition on it.

# Controller

A Controller is created per visitor with the store it talks to:

	ctrl := facts.NewController(st, slog.Default())
	ctrl.Load(ctx)

It tracks the loaded facts, the category filter, the form visibility,
the upload flag and the set of facts with a vote in flight.

# Fetching

Every fetch takes a fresh token. When responses arrive out of order only
the one carrying the latest token is applied, so the list always matches
the category selected last.

# Submitting

Submit validates the form before any store call:

  - text is non-empty and at most 200 characters
  - source is an absolute http or https URL
  - category is one of the registered categories

The stored row is prepended to the list, whatever the current filter.

# Voting

Vote writes the value the visitor saw plus one. Concurrent voters can
overwrite each other's increments; the list shows whatever row the store
returns. A second vote on the same fact is refused until the first one
settles.

# Alerts

Failed store requests queue an Alert with a fixed message per kind. The
view drains them with TakeAlerts; TakeAlert(kind) takes only the alert of one
failed operation.
*/
package facts

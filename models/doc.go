// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types.

# Domain Types

  - Fact: a row of the facts table (id, text, source, category, counters, createdIn)
  - NewFact: insert payload (text, source, category)
  - Category: registry entry (name, color)
  - Counter: one of the three vote counters

A fact is disputed when its false votes outnumber the sum of the
interesting and mindblowing votes:

	if fact.IsDisputed() { ... }

# Counters

Counters are a closed set. Field returns the column name, Of reads the
value from a fact:

	models.Mindblowing.Field()   // "votesMindblowing"
	models.Mindblowing.Of(fact)  // fact.VotesMindblowing

ParseCounter accepts the field name or the short label
("interesting", "mindblowing", "false").

# Request Types

  - SetCategoryRequest: category
  - SubmitFactRequest: text, source, category
  - VoteRequest: counter
  - SetFormRequest: show

# Response Types

  - StateResponse: facts, loading/uploading flags, current category, alerts
  - CategoriesResponse: categories
  - ErrorResponse: error, message

# Constants

	MaxTextLength = 200
	FetchLimit    = 1000
*/
package models

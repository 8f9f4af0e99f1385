// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package facts

// AlertKind classifies a failed store request
type AlertKind string

const (
	FetchFailed  AlertKind = "fetch_failed"
	InsertFailed AlertKind = "insert_failed"
	UpdateFailed AlertKind = "update_failed"
)

// maxAlerts bounds the queue for sessions that never read their alerts
const maxAlerts = 10

// Alert is a user-visible failure notice
type Alert struct {
	Kind    AlertKind
	Message string
	Err     error
}

func (k AlertKind) message() string {
	switch k {
	case FetchFailed:
		return "There was a problem getting data"
	case InsertFailed:
		return "There was a problem sharing your fact"
	case UpdateFailed:
		return "There was a problem recording your vote"
	}
	return "Something went wrong"
}

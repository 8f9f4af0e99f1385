// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidSignature = errors.New("invalid session signature")
	ErrInvalidToken     = errors.New("invalid token format")
)

// GenerateSessionID creates a random session identifier
func GenerateSessionID() string {
	return uuid.NewString()
}

// SignSession returns the cookie value for a session: "<id>.<mac>"
// The MAC is deterministic, so validation needs no server-side record.
func SignSession(sessionID, salt string) string {
	return sessionID + "." + sessionMAC(sessionID, salt)
}

// VerifySession checks a signed session token and returns the session ID
func VerifySession(token, salt string) (string, error) {
	idx := strings.LastIndexByte(token, '.')
	if idx <= 0 || idx == len(token)-1 {
		return "", ErrInvalidToken
	}

	sessionID, mac := token[:idx], token[idx+1:]
	if _, err := uuid.Parse(sessionID); err != nil {
		return "", ErrInvalidToken
	}

	expected := sessionMAC(sessionID, salt)
	if !hmac.Equal([]byte(mac), []byte(expected)) {
		return "", ErrInvalidSignature
	}
	return sessionID, nil
}

func sessionMAC(sessionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner cookies
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}

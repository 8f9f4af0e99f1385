// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session token and hashing utilities.

# Session Tokens

Session IDs are random UUIDs:

	id := auth.GenerateSessionID()

The cookie carries the ID plus an HMAC-SHA256 signature:

	token := auth.SignSession(id, salt)       // "<id>.<mac>"
	id, err := auth.VerifySession(token, salt)

The signature is URL-safe base64 encoded without padding. Since it's
deterministic, the server can verify a cookie without storing anything.
VerifySession returns ErrInvalidToken for malformed values and
ErrInvalidSignature when the MAC does not match.

# IP Hashing

Client addresses are hashed before they are used as rate limiter keys:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and random ID generation.

# Passwords

Passwords are stored as bcrypt hashes (salted, one-way):

	hash, err := auth.HashPassword(password)

Verify at login:

	err := auth.CheckPassword(user.PasswordHash, password)
	if errors.Is(err, auth.ErrPasswordMismatch) {
		// wrong password
	}

There is no password policy and no lockout; every attempt is checked.

# IDs

GenerateID creates random hex identifiers for SQL-backed poll documents:

	pollID, err := auth.GenerateID(12) // 24 hex chars

Mongo-backed polls use the driver's ObjectID instead.
*/
package auth

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: mongo, postgres or sqlite (default: mongo)
  - DatabaseURL: Connection string (default: mongodb://localhost:27017/)
  - DatabaseName: Mongo database name (default: pollconnect)
  - ShareBaseURL: Base URL embedded in share links
  - SessionLifetime: How long a login stays valid (default: 24h)

# CLI Flags

	-p                 Server port
	-t                 Database type
	-d                 Database URL
	-n                 Database name
	--share-url        Public base URL for share links
	--session-lifetime Login session lifetime

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_TYPE    → -t
	DATABASE_URL     → -d
	DATABASE_NAME    → -n
	SHARE_BASE_URL   → --share-url
	SESSION_LIFETIME → --session-lifetime

CLI flags take precedence over environment variables. main loads a .env
file (if present) before parsing, so values from it behave like real
environment variables.

# Validation

ParseFlags returns an error if:

  - PORT is not a number or outside 1-65535
  - DATABASE_TYPE is not one of the supported backends
  - DATABASE_URL is missing for postgres or sqlite
  - SESSION_LIFETIME is not a valid duration
*/
package cliparse

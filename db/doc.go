// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema and index creation for every storage backend.

# SQL Schema

CreateSchema initializes the tables used by the postgres and sqlite
backends:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - app_user: username (primary key), bcrypt hash, created_at
  - poll: id, owner username, JSON document body, rev, created_at

There is no foreign key between poll.username and app_user; deleting a user
leaves their polls in place.

# Mongo Indexes

EnsureIndexes creates a unique index on users.username:

	if err := db.EnsureIndexes(ctx, client.Database("pollconnect")); err != nil {
		log.Fatal(err)
	}

There is no migration system. Older poll documents are upgraded on read by
store.NormalizeLegacyPoll and rewritten in the current shape on their next
update.
*/
package db

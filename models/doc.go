// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain and view types shared across packages.

# Domain Types

Persisted documents (bson tags for Mongo, json tags for the SQL backends):

  - User: username, bcrypt password hash, created_at
  - Poll: owner, question, ordered options, comments, likes, dislikes, rev
  - Option: label, vote count and voter list

Poll.ID is not part of the stored document body; each store maps it to its
own key (ObjectID hex for Mongo, text primary key for SQL).

Poll.Rev is bumped by the store on every successful update and is used as
a compare-and-swap token.

# View Types

Data passed to templates:

  - PollView: a poll plus precomputed tallies and ownership
  - OptionView: label, votes and percentage of the total
  - Flash: a one-shot message with a kind (success, error, warning)

# Helpers

	options := models.NewOptions([]string{"A", "B"}) // zeroed counters
	total := poll.TotalVotes()
*/
package models

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
)

// Domain types

type User struct {
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

type Option struct {
	Label  string   `json:"label" bson:"label"`
	Votes  int      `json:"votes" bson:"votes"`
	Voters []string `json:"voters" bson:"voters"`
}

type Poll struct {
	ID        string    `json:"id" bson:"-"`
	Username  string    `json:"username" bson:"username"`
	Question  string    `json:"question" bson:"question"`
	Options   []Option  `json:"options" bson:"options"`
	Comments  []string  `json:"comments" bson:"comments"`
	Likes     int       `json:"likes" bson:"likes"`
	Dislikes  int       `json:"dislikes" bson:"dislikes"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Rev       int64     `json:"rev" bson:"rev"`
}

// NewOptions builds a fresh option list with zeroed counters. A repeated
// label keeps its first position and is not added again.
func NewOptions(labels []string) []Option {
	options := make([]Option, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if seen[label] {
			continue
		}
		seen[label] = true
		options = append(options, Option{Label: label, Votes: 0, Voters: []string{}})
	}
	return options
}

// TotalVotes sums the vote counters of every option
func (p Poll) TotalVotes() int {
	total := 0
	for _, opt := range p.Options {
		total += opt.Votes
	}
	return total
}

// Labels returns option labels in display order
func (p Poll) Labels() []string {
	labels := make([]string, len(p.Options))
	for i, opt := range p.Options {
		labels[i] = opt.Label
	}
	return labels
}

// View types

type Flash struct {
	Kind    string
	Message string
}

type OptionView struct {
	Label   string
	Votes   int
	Percent float64
	HasVote bool // total votes > 0, percentage is meaningful
	Mine    bool
}

type PollView struct {
	Poll       Poll
	Initial    string
	Options    []OptionView
	TotalVotes int
	IsOwner    bool
}

// Health response

type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

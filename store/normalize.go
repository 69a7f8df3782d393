// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type field struct {
	key   string
	value any
}

// NormalizeLegacyPoll upgrades a raw poll document to the current shape.
//
// Polls written before options became an ordered list stored them as a
// mapping of label to {votes, voters}; those are converted to a list, in
// stored key order when the document preserves it and sorted otherwise.
// Missing votes, voters, likes, dislikes, comments and rev are filled with
// zero values. The input is not modified.
func NormalizeLegacyPoll(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc)+5)
	for k, v := range doc {
		out[k] = v
	}

	out["options"] = normalizeOptions(doc["options"])

	if doc["comments"] == nil {
		out["comments"] = []any{}
	}
	// legacy writer used "likes " (trailing space); never read
	if _, ok := doc["likes"]; !ok {
		out["likes"] = 0
	}
	if _, ok := doc["dislikes"]; !ok {
		out["dislikes"] = 0
	}
	if _, ok := doc["rev"]; !ok {
		out["rev"] = int64(0)
	}

	return out
}

func normalizeOptions(v any) []any {
	// Legacy shape: label -> {votes, voters}
	if entries, ok := fields(v); ok {
		options := make([]any, 0, len(entries))
		for _, e := range entries {
			data, _ := asMap(e.value)
			options = append(options, normalizeOption(e.key, data))
		}
		return options
	}

	items, ok := asSlice(v)
	if !ok {
		return []any{}
	}
	options := make([]any, 0, len(items))
	for _, item := range items {
		data, ok := asMap(item)
		if !ok {
			continue
		}
		label, _ := data["label"].(string)
		options = append(options, normalizeOption(label, data))
	}
	return options
}

func normalizeOption(label string, data map[string]any) map[string]any {
	opt := map[string]any{
		"label":  label,
		"votes":  0,
		"voters": []any{},
	}
	if votes, ok := data["votes"]; ok && votes != nil {
		opt["votes"] = votes
	}
	if voters, ok := asSlice(data["voters"]); ok {
		opt["voters"] = voters
	}
	return opt
}

// fields returns the entries of a document-like value in a stable order
func fields(v any) ([]field, bool) {
	switch m := v.(type) {
	case primitive.D:
		out := make([]field, 0, len(m))
		for _, e := range m {
			out = append(out, field{key: e.Key, value: e.Value})
		}
		return out, true
	case primitive.M:
		return sortedFields(m), true
	case map[string]any:
		return sortedFields(m), true
	}
	return nil, false
}

func sortedFields(m map[string]any) []field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]field, 0, len(keys))
	for _, k := range keys {
		out = append(out, field{key: k, value: m[k]})
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	entries, ok := fields(v)
	if !ok {
		return nil, false
	}
	m := make(map[string]any, len(entries))
	for _, e := range entries {
		m[e.key] = e.value
	}
	return m, true
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case primitive.A:
		return []any(s), true
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, true
	}
	return nil, false
}

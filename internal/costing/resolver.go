package costing

import (
	"errors"
	"sort"
	"strings"
)

// ErrNoFieldsResolved indicates that not a single desired output could be
// mapped onto the catalog. Writing nothing back is indistinguishable from
// success for the caller, so total failure is loud instead of silent.
var ErrNoFieldsResolved = errors.New("no output field resolved against the list schema")

// FieldDescriptor describes one column of an external list: its stable
// machine-readable identifier and its human-facing display label.
type FieldDescriptor struct {
	InternalID   string `json:"internal_id"`
	DisplayLabel string `json:"display_label"`
}

// DesiredField pairs an output value with the ordered candidate names it may
// be stored under.
type DesiredField struct {
	Value      any
	Candidates []string
}

// ResolvedPatch is the write-back payload: values keyed by the catalog's
// internal identifiers, plus the logical keys that could not be mapped.
type ResolvedPatch struct {
	Fields     map[string]any
	Unresolved []string
}

// Resolve maps each desired logical output onto a catalog column.
//
// Matching runs in strict priority order, and a pass is exhausted across all
// candidates before the next one is tried:
//
//  1. candidate equals an internal identifier exactly
//  2. candidate equals a display label exactly
//  3. normalized candidate equals a normalized internal identifier
//  4. normalized candidate equals a normalized display label
//
// Keys with no match across all passes are reported in Unresolved and their
// values omitted. Partial resolution is fine; resolving nothing at all
// returns ErrNoFieldsResolved.
func Resolve(catalog []FieldDescriptor, desired map[string]DesiredField) (ResolvedPatch, error) {
	patch := ResolvedPatch{Fields: make(map[string]any, len(desired))}

	keys := make([]string, 0, len(desired))
	for key := range desired {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		want := desired[key]
		internalID, ok := resolveCandidates(catalog, want.Candidates)
		if !ok {
			patch.Unresolved = append(patch.Unresolved, key)
			continue
		}
		patch.Fields[internalID] = want.Value
	}

	if len(patch.Fields) == 0 {
		return patch, ErrNoFieldsResolved
	}
	return patch, nil
}

func resolveCandidates(catalog []FieldDescriptor, candidates []string) (string, bool) {
	for _, candidate := range candidates {
		for _, column := range catalog {
			if candidate == column.InternalID {
				return column.InternalID, true
			}
		}
	}

	for _, candidate := range candidates {
		for _, column := range catalog {
			if candidate == column.DisplayLabel {
				return column.InternalID, true
			}
		}
	}

	for _, candidate := range candidates {
		normalized := normalizeFieldName(candidate)
		if normalized == "" {
			continue
		}
		for _, column := range catalog {
			if normalized == normalizeFieldName(column.InternalID) {
				return column.InternalID, true
			}
		}
	}

	for _, candidate := range candidates {
		normalized := normalizeFieldName(candidate)
		if normalized == "" {
			continue
		}
		for _, column := range catalog {
			if normalized == normalizeFieldName(column.DisplayLabel) {
				return column.InternalID, true
			}
		}
	}

	return "", false
}

// normalizeFieldName lowercases and strips every non-alphanumeric rune, so
// "Wastage Rate (%)" and "WastageRate(%)" collapse to the same key.
func normalizeFieldName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

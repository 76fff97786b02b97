package constants

import (
	"strings"
)

type DocType string

const (
	Estate DocType = "estate"
	Tax    DocType = "tax"
)

var allDocTypes = []DocType{
	Estate,
	Tax,
}

// DisplayName is the label shown to users for each document type.
var DisplayName = map[DocType]string{
	Estate: "Power of Attorney",
	Tax:    "Tax Return",
}

// DefaultDocDirs is where each document type is looked up by default.
var DefaultDocDirs = map[DocType]string{
	Estate: "docs/estate",
	Tax:    "docs/tax",
}

func AsStringSlice() []string {
	result := make([]string, len(allDocTypes))
	for i, dt := range allDocTypes {
		result[i] = string(dt)
	}
	return result
}

func AllDocTypes() []DocType {
	return append([]DocType(nil), allDocTypes...)
}

func Canonicalize(input string) (DocType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	// synonyms map
	synonyms := map[string]DocType{
		"power of attorney": Estate,
		"poa":               Estate,
		"estate planning":   Estate,
		"tax return":        Tax,
		"tax form":          Tax,
		"1040":              Tax,
	}

	if dt, ok := synonyms[normalized]; ok {
		return dt, true
	}

	for _, dt := range allDocTypes {
		if normalized == string(dt) {
			return dt, true
		}
	}

	return "", false
}

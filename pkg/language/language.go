// Package language normalizes user supplied language names and codes into
// canonical DeepL language codes.
package language

import (
	"fmt"
	"sort"
	"strings"
)

// Role selects which side of a translation a language is resolved for.
type Role int

const (
	// Source resolves to the base codes DeepL accepts for source_lang.
	Source Role = iota
	// Target resolves to the codes DeepL accepts for target_lang, which
	// requires a regional variant for some languages.
	Target
)

func (role Role) String() string {
	if role == Source {
		return "source"
	}

	return "target"
}

// Spec describes one canonical language code and the aliases that resolve to it.
type Spec struct {
	Code    string
	Name    string
	Aliases []string

	// Base is the base code of a regional variant ("EN" for "EN-GB").
	Base string

	// Variants lists the regional variants of a base code.
	Variants []string

	// RequiresVariant marks base codes the provider rejects as a target.
	RequiresVariant bool
}

// NotFoundError is returned when an input matches no catalog entry.
type NotFoundError struct {
	Input string
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("unknown language %q", err.Input)
}

// AmbiguousError is returned when a base code is given where a regional
// variant is required.
type AmbiguousError struct {
	Input      string
	Code       string
	Candidates []string
}

func (err *AmbiguousError) Error() string {
	return fmt.Sprintf(
		"language %q (%s) needs a regional variant as a target, use one of: %s",
		err.Input, err.Code, strings.Join(err.Candidates, ", "),
	)
}

var (
	aliasIndex = map[string]int{}
	codeIndex  = map[string]int{}
)

func init() {
	for i, spec := range catalog {
		keys := append([]string{spec.Code, spec.Name}, spec.Aliases...)

		for _, key := range keys {
			key = strings.ToLower(strings.TrimSpace(key))

			if prev, ok := aliasIndex[key]; ok && prev != i {
				panic(fmt.Sprintf("language: alias %q maps to both %s and %s", key, catalog[prev].Code, spec.Code))
			}

			aliasIndex[key] = i
		}

		codeIndex[normalize(spec.Code)] = i
	}
}

// normalize strips separators and uppercases, so "en_us" and "EN-US" compare equal.
func normalize(input string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}

		return r
	}, strings.ToUpper(input))
}

// Lookup finds the catalog entry for a language name, alias or code.
// Matching is case-insensitive and ignores surrounding whitespace. Exact
// alias matches win over the normalized code comparison.
func Lookup(input string) (Spec, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Spec{}, &NotFoundError{Input: input}
	}

	if i, ok := aliasIndex[strings.ToLower(trimmed)]; ok {
		return catalog[i], nil
	}

	if i, ok := codeIndex[normalize(trimmed)]; ok {
		return catalog[i], nil
	}

	return Spec{}, &NotFoundError{Input: input}
}

// Resolve returns the canonical provider code for input in the given role.
func Resolve(input string, role Role) (string, error) {
	spec, err := Lookup(input)
	if err != nil {
		return "", err
	}

	switch role {
	case Source:
		if spec.Base != "" {
			return spec.Base, nil
		}
	case Target:
		if spec.RequiresVariant {
			candidates := append([]string(nil), spec.Variants...)
			sort.Strings(candidates)

			return "", &AmbiguousError{
				Input:      input,
				Code:       spec.Code,
				Candidates: candidates,
			}
		}
	}

	return spec.Code, nil
}

// Catalog returns a copy of the static language catalog.
func Catalog() []Spec {
	out := make([]Spec, len(catalog))
	copy(out, catalog)

	return out
}

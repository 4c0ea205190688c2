package matching

import (
	"strings"

	"github.com/licitops/secop-scout/internal/secop"
)

const (
	// Two codes belong to the same category when their first four characters
	// are equal. This deliberately coarsens exact-code matching into a
	// sector match and is the single comparison primitive used everywhere.
	categoryPrefixLen = 4
	// Codes shorter than the prefix carry no usable category information.
	minCategoryLen = 4
)

// ExtractCategories returns the tender's usable category codes. It never
// fails: an empty result means "no category information", which callers must
// not treat as an error. The feed prefixes codes with a version tag
// (e.g. "V1.80111600") that is stripped before use.
func ExtractCategories(t *secop.Tender) []string {
	if t == nil {
		return []string{}
	}

	categories := make([]string, 0, 1)
	if code := NormalizeCode(t.MainCategory); code != "" {
		categories = append(categories, code)
	}
	return categories
}

// NormalizeCode strips the feed's version-tag prefix and whitespace from a
// classification code. Codes shorter than the minimum length are discarded
// and reported as empty.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)

	// Version tags look like "V1." and precede the actual code.
	if dot := strings.Index(code, "."); dot > 0 && dot < minCategoryLen {
		if code[0] == 'V' || code[0] == 'v' {
			code = code[dot+1:]
		}
	}

	if len(code) < minCategoryLen {
		return ""
	}
	return code
}

// SameCategory reports whether two codes fall into the same category, i.e.
// share the four-character prefix.
func SameCategory(a, b string) bool {
	a = NormalizeCode(a)
	b = NormalizeCode(b)
	if a == "" || b == "" {
		return false
	}
	return a[:categoryPrefixLen] == b[:categoryPrefixLen]
}

// categoryKey reduces a normalized code to its comparison prefix.
func categoryKey(code string) string {
	code = NormalizeCode(code)
	if code == "" {
		return ""
	}
	return code[:categoryPrefixLen]
}

func anyCategoryMatch(bidderCodes, tenderCodes []string) bool {
	for _, tc := range tenderCodes {
		for _, bc := range bidderCodes {
			if SameCategory(bc, tc) {
				return true
			}
		}
	}
	return false
}

package service

import (
	"fmt"
	"strings"
	"unicode"
)

// Identifier prefixes for the three principal kinds.
const (
	InsurerIDPrefix  = "UNYTE-INS"
	AgentIDPrefix    = "UNYTE-AGT"
	MerchantIDPrefix = "UNYTE-MCH"
)

// GenerateBusinessID composes a deterministic, human-auditable identifier
// from stable identity fields (business name + registration number, or
// agent name + bank account). Pure function: identical seeds always produce
// the identical identifier. The caller owns collision checking against the
// store; on a collision it retries through DisambiguateBusinessID.
func GenerateBusinessID(prefix string, seeds ...string) string {
	parts := make([]string, 0, len(seeds)+1)
	parts = append(parts, prefix)
	for _, seed := range seeds {
		if s := sanitizeSeed(seed); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "-")
}

// DisambiguateBusinessID appends an attempt suffix to a colliding base
// identifier. Attempt numbering starts at 1.
func DisambiguateBusinessID(base string, attempt int) string {
	return fmt.Sprintf("%s-%d", base, attempt)
}

// sanitizeSeed keeps identifiers URL- and log-safe: uppercase alphanumerics,
// everything else collapsed away.
func sanitizeSeed(seed string) string {
	var b strings.Builder
	for _, r := range seed {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

package nuget

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

// requirement matches versions against an advisory or ignore entry. It accepts
// comparison lists (">= 1.0, < 1.2.3"), NuGet interval notation
// ("[1.0.0, 1.2.3)") and bare versions, which match exactly.
type requirement struct {
	raw         string
	constraints *semver.Constraints
	comparisons [][]comparison // OR of ANDs, for versions semver cannot hold
}

// comparison is a single "op version" term evaluated with NuGet ordering.
type comparison struct {
	op      string
	version string
}

var comparisonOps = []string{">=", "<=", "!=", "==", "=", ">", "<"} //nolint:gochecknoglobals // two-char ops first

func parseRequirement(raw string) requirement {
	value := strings.TrimSpace(raw)
	if interval, ok := intervalToConstraint(value); ok {
		value = interval
	}

	req := requirement{raw: strings.TrimSpace(raw), comparisons: parseComparisons(value)}
	if constraints, err := semver.NewConstraint(value); err == nil {
		req.constraints = constraints
	}
	return req
}

// matches checks version with the semver constraints when both sides are
// plain semver, and with NuGet ordering otherwise (e.g. "2.1.0.5").
func (r requirement) matches(version string) bool {
	if r.constraints != nil {
		if parsed, err := semver.NewVersion(version); err == nil {
			return r.constraints.Check(parsed)
		}
	}
	if r.comparisons != nil {
		return matchesComparisons(r.comparisons, version)
	}
	return entities.CompareVersions(r.raw, version) == 0
}

// parseComparisons reads "||"-separated groups of ","-separated terms. It
// returns nil when any term is not a plain comparison.
func parseComparisons(value string) [][]comparison {
	var groups [][]comparison
	for _, rawGroup := range strings.Split(value, "||") {
		var group []comparison
		for _, term := range strings.Split(rawGroup, ",") {
			parsed, ok := parseComparison(strings.TrimSpace(term))
			if !ok {
				return nil
			}
			group = append(group, parsed)
		}
		groups = append(groups, group)
	}
	return groups
}

func parseComparison(term string) (comparison, bool) {
	op := "="
	for _, candidate := range comparisonOps {
		if strings.HasPrefix(term, candidate) {
			op = candidate
			term = strings.TrimSpace(strings.TrimPrefix(term, candidate))
			break
		}
	}
	if !entities.IsValidVersion(term) {
		return comparison{}, false
	}
	return comparison{op: op, version: term}, true
}

func matchesComparisons(groups [][]comparison, version string) bool {
	if !entities.IsValidVersion(version) {
		return false
	}
	for _, group := range groups {
		if matchesGroup(group, version) {
			return true
		}
	}
	return false
}

func matchesGroup(group []comparison, version string) bool {
	for _, term := range group {
		cmp := entities.CompareVersions(version, term.version)
		var ok bool
		switch term.op {
		case ">=":
			ok = cmp >= 0
		case "<=":
			ok = cmp <= 0
		case ">":
			ok = cmp > 0
		case "<":
			ok = cmp < 0
		case "!=":
			ok = cmp != 0
		default:
			ok = cmp == 0
		}
		if !ok {
			return false
		}
	}
	return true
}

// intervalToConstraint converts "[a, b)" style ranges to comparison lists.
func intervalToConstraint(value string) (string, bool) {
	if len(value) < 2 || !strings.ContainsAny(value[:1], "[(") || !strings.ContainsAny(value[len(value)-1:], "])") {
		return "", false
	}

	inner := value[1 : len(value)-1]
	lower, upper, hasComma := strings.Cut(inner, ",")
	lower, upper = strings.TrimSpace(lower), strings.TrimSpace(upper)
	if !hasComma {
		return "= " + lower, true
	}

	var parts []string
	if lower != "" {
		if value[0] == '[' {
			parts = append(parts, ">= "+lower)
		} else {
			parts = append(parts, "> "+lower)
		}
	}
	if upper != "" {
		if value[len(value)-1] == ']' {
			parts = append(parts, "<= "+upper)
		} else {
			parts = append(parts, "< "+upper)
		}
	}
	if len(parts) == 0 {
		return "*", true
	}
	return strings.Join(parts, ", "), true
}

func matchesAny(requirements []requirement, version string) bool {
	for _, req := range requirements {
		if req.matches(version) {
			return true
		}
	}
	return false
}

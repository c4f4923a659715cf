package metrics

import (
	"strings"
)

// Error categories reported in the summary. The set is closed; anything
// that matches no rule falls into CategoryOther.
const (
	CategoryTimeout    = "Timeout"
	CategorySelector   = "Selector/Locator"
	CategoryNetwork    = "Network"
	CategoryAssertion  = "Assertion"
	CategoryNavigation = "Navigation"
	CategoryOther      = "Other"
)

// classificationRules are evaluated in order; the first case-insensitive
// substring match wins. Report consumers depend on this exact priority,
// so keep the order stable.
var classificationRules = []struct {
	category string
	keywords []string
}{
	{CategoryTimeout, []string{"timeout", "timed out", "deadline exceeded"}},
	{CategorySelector, []string{"locator", "selector", "element not found", "element is not attached", "strict mode violation"}},
	{CategoryNetwork, []string{"network", "fetch failed", "connection refused", "connection reset", "socket hang up", "econnrefused"}},
	{CategoryAssertion, []string{"expect", "assertion", "received", "tobe", "tohave", "tocontain"}},
	{CategoryNavigation, []string{"navigation", "page.goto", "net::", "frame was detached"}},
}

// ClassifyError maps an error message to one category. Empty or
// unrecognized messages classify as Other.
func ClassifyError(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range classificationRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

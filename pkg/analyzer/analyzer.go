package analyzer

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"

	"github.com/your-org/enhanced-html-reporter/pkg/metrics"
	"github.com/your-org/enhanced-html-reporter/pkg/models"
)

// FailureGroup represents failed tests sharing the same error signature.
type FailureGroup struct {
	Signature     string   `json:"signature"`
	Category      string   `json:"category"`
	Count         int      `json:"count"`
	AffectedTests []string `json:"affectedTests"`
	Severity      string   `json:"severity"`
	SampleError   string   `json:"sampleError"`
}

var (
	numberPattern = regexp.MustCompile(`\d+`)
	pathPattern   = regexp.MustCompile(`/[^\s]+`)
	uuidPattern   = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
)

// GenerateErrorSignature produces a stable signature for similar errors
// by masking the dynamic parts of the message (numbers, paths, UUIDs).
func GenerateErrorSignature(message, category string) string {
	cleaned := numberPattern.ReplaceAllString(message, "N")
	cleaned = pathPattern.ReplaceAllString(cleaned, "/PATH")
	cleaned = uuidPattern.ReplaceAllString(cleaned, "UUID")

	hash := md5.Sum([]byte(fmt.Sprintf("%s:%s", category, cleaned)))
	return hex.EncodeToString(hash[:])
}

// GroupFailures clusters failed tests by error signature, most frequent
// group first.
func GroupFailures(details []*models.TestResultDetail) []*FailureGroup {
	groups := make(map[string]*FailureGroup)

	for _, d := range details {
		if !d.Status.CountsAsFailed() || d.Error == "" {
			continue
		}

		category := metrics.ClassifyError(d.Error)
		signature := GenerateErrorSignature(d.Error, category)

		group, ok := groups[signature]
		if !ok {
			group = &FailureGroup{
				Signature:   signature,
				Category:    category,
				SampleError: d.Error,
			}
			groups[signature] = group
		}

		group.Count++
		group.AffectedTests = append(group.AffectedTests, d.Name)
	}

	result := make([]*FailureGroup, 0, len(groups))
	for _, g := range groups {
		g.Severity = severityFor(g.Count)
		result = append(result, g)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Signature < result[j].Signature
	})

	return result
}

func severityFor(count int) string {
	switch {
	case count >= 5:
		return "critical"
	case count >= 3:
		return "high"
	case count == 2:
		return "medium"
	default:
		return "low"
	}
}

// HealthStatus grades a finalized run for the report header.
func HealthStatus(m *models.RunMetrics) string {
	switch {
	case m.PassRate >= 95:
		return "Excellent"
	case m.PassRate >= 80:
		return "Good"
	case m.PassRate >= 60:
		return "Fair"
	default:
		return "Poor"
	}
}

package metrics

import (
	"strings"

	"github.com/your-org/enhanced-html-reporter/pkg/models"
)

// Defaults applied when a test carries no matching annotation.
const (
	DefaultSeverity = "normal"
	DefaultFeature  = "Unknown"
	DefaultEpic     = "General"
)

// ExtractAnnotations normalizes a test's annotation tags into the
// severity/feature/epic triple. Tags are expected to be unique per test;
// when duplicates appear the last one wins.
func ExtractAnnotations(annotations []models.Annotation) models.AnnotationInfo {
	info := models.AnnotationInfo{
		Severity: DefaultSeverity,
		Feature:  DefaultFeature,
		Epic:     DefaultEpic,
	}

	for _, a := range annotations {
		if a.Description == "" {
			continue
		}
		switch strings.ToLower(a.Type) {
		case "severity":
			info.Severity = a.Description
		case "feature":
			info.Feature = a.Description
		case "epic":
			info.Epic = a.Description
		}
	}

	return info
}

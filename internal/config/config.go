// ABOUTME: Product constants shared by the CLI commands and TUI screens
// ABOUTME: Upload limits, supported formats, transformation costs, plan names

package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxFileSize is the upload size limit enforced client-side (10 MB).
const MaxFileSize = 10 * 1024 * 1024

// SupportedExtensions lists the image file extensions accepted for upload.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// TransformationCosts maps transformation types to their credit cost.
var TransformationCosts = map[string]int{
	"restore":         1,
	"remove_bg":       1,
	"remove_obj":      1,
	"enhance":         1,
	"replace_bg":      2,
	"generative_fill": 3,
}

// TransformationLabels maps transformation types to display names.
var TransformationLabels = map[string]string{
	"restore":         "Restore",
	"remove_bg":       "Remove Background",
	"remove_obj":      "Remove Object",
	"enhance":         "Enhance",
	"replace_bg":      "Replace Background",
	"generative_fill": "Generative Fill",
}

// planNames maps plan IDs to display names.
var planNames = map[int]string{
	1: "Free",
	2: "Pro Monthly",
	3: "Pro 6-Month",
}

// Plan describes a subscription tier.
type Plan struct {
	ID             int
	Name           string
	MonthlyCredits int
	DurationMonths int // 0 means no fixed term
}

// Plans lists the subscription tiers in display order.
var Plans = []Plan{
	{ID: 1, Name: "Free", MonthlyCredits: 10},
	{ID: 2, Name: "Pro Monthly", MonthlyCredits: 50, DurationMonths: 1},
	{ID: 3, Name: "Pro 6-Month", MonthlyCredits: 100, DurationMonths: 6},
}

// PlanByID returns the plan for an ID and whether it exists.
func PlanByID(id int) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// PlanName returns the display name for a plan ID.
func PlanName(id int) string {
	if name, ok := planNames[id]; ok {
		return name
	}
	return "Unknown"
}

// TransformationLabel returns the display name for a transformation type,
// defaulting to "Original" for untransformed assets.
func TransformationLabel(t string) string {
	if t == "" {
		return "Original"
	}
	if label, ok := TransformationLabels[t]; ok {
		return label
	}
	return t
}

// TransformationCost returns the credit cost for a transformation type and
// whether the type is known.
func TransformationCost(t string) (int, bool) {
	cost, ok := TransformationCosts[t]
	return cost, ok
}

// SupportedExtension reports whether the file name carries a supported
// image extension.
func SupportedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ValidateFile checks a candidate upload against the supported format set and
// the size limit. Validation failures block the upload before any network I/O.
func ValidateFile(name string, size int64) error {
	if !SupportedExtension(name) {
		return fmt.Errorf("unsupported file type: %s", filepath.Ext(name))
	}
	if size > MaxFileSize {
		return fmt.Errorf("file too large: %d bytes (max %d)", size, MaxFileSize)
	}
	return nil
}

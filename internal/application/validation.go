package application

import (
	"fmt"
	"strings"

	"concepdag/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts field names to words for error messages
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"uci":         "UCI",
		"query":       "search query",
		"projectPath": "project path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateUCI checks that a user-supplied UCI is well formed.
// Returns a ValidationError wrapping the reason otherwise.
func ValidateUCI(fieldName, uci string) error {
	if err := ValidateRequired(fieldName, uci); err != nil {
		return err
	}
	if err := domain.ValidateUCI(uci); err != nil {
		return &ValidationError{
			Field:   fieldName,
			Message: err.Error(),
		}
	}
	return nil
}

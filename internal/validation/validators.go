package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/taskbreak/taskbreak/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	// These should never fail in normal operation
	if err := Validate.RegisterValidation("priority", validatePriority); err != nil {
		panic(fmt.Sprintf("failed to register priority validator: %v", err))
	}
	if err := Validate.RegisterValidation("theme", validateTheme); err != nil {
		panic(fmt.Sprintf("failed to register theme validator: %v", err))
	}
	if err := Validate.RegisterValidation("language", validateLanguage); err != nil {
		panic(fmt.Sprintf("failed to register language validator: %v", err))
	}
}

// validatePriority validates that a string is a valid Priority enum value
func validatePriority(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.Priority(value) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	default:
		return false
	}
}

// validateTheme validates that a string is a valid Theme enum value
func validateTheme(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.Theme(value) {
	case models.ThemeLight, models.ThemeDark, models.ThemeAuto:
		return true
	default:
		return false
	}
}

// validateLanguage validates that a string is a valid Language enum value
func validateLanguage(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.Language(value) {
	case models.LanguageZhCN, models.LanguageEnUS:
		return true
	default:
		return false
	}
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidatePriority validates a Priority string value
func ValidatePriority(value string) error {
	switch models.Priority(value) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return nil
	default:
		return fmt.Errorf("invalid priority: %s (must be 'low', 'medium', or 'high')", value)
	}
}

// ValidateReminderInterval validates a reminder interval against the offered choices
func ValidateReminderInterval(minutes int) error {
	for _, allowed := range models.ReminderIntervals {
		if minutes == allowed {
			return nil
		}
	}
	return fmt.Errorf("invalid reminder interval: %d (must be one of 15, 30, 60, 120, 240)", minutes)
}

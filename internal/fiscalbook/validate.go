package fiscalbook

import (
	"strconv"
	"strings"
	"time"

	apperrors "fiscalbook/internal/errors"
	"fiscalbook/internal/models"
)

const maxNameLength = 100

// ValidateName returns the validation code for a book name, or "" when valid.
func ValidateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return apperrors.CodeRequired
	}
	if len([]rune(name)) > maxNameLength {
		return apperrors.CodeTooLong
	}
	return ""
}

// ValidatePeriod returns the validation code for a book period, or "" when
// valid. Accepted forms are YYYY and YYYY-MM with the year between 2000 and
// next year and the month between 1 and 12.
func ValidatePeriod(period string) string {
	if strings.TrimSpace(period) == "" {
		return apperrors.CodeRequired
	}

	yearPart := period
	monthPart := ""
	hasMonth := false
	if i := strings.Index(period, "-"); i >= 0 {
		yearPart = period[:i]
		monthPart = period[i+1:]
		hasMonth = true
	}

	if len(yearPart) != 4 {
		return apperrors.CodeFormat
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return apperrors.CodeFormat
	}
	if year < 2000 || year > time.Now().Year()+1 {
		return apperrors.CodeRange
	}

	// A dash with nothing after it is malformed, not a plain YYYY.
	if hasMonth {
		if len(monthPart) != 2 {
			return apperrors.CodeFormat
		}
		month, err := strconv.Atoi(monthPart)
		if err != nil {
			return apperrors.CodeFormat
		}
		if month < 1 || month > 12 {
			return apperrors.CodeRange
		}
	}

	return ""
}

// Validate checks a whole book before it is sent to the backend. The result
// is a field-to-code map; an empty map means the book is valid. Validation
// failures never reach the network.
func Validate(book models.FiscalBook) apperrors.FieldErrors {
	fields := apperrors.FieldErrors{}
	if code := ValidateName(book.EffectiveName()); code != "" {
		fields["bookName"] = code
	}
	if code := ValidatePeriod(book.EffectivePeriod()); code != "" {
		fields["bookPeriod"] = code
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

package aggregator

import "github.com/openmeteo/enhydris-synoptic/internal/models"

// Classify maps a resolved value to a status. A nil value is an error. The
// low limit takes precedence: a value simultaneously below the low limit and
// above the high limit (possible only with a pathological configuration)
// classifies as low.
func Classify(value *float64, low, high *float64) models.Status {
	switch {
	case value == nil:
		return models.StatusError
	case low != nil && *value < *low:
		return models.StatusLow
	case high != nil && *value > *high:
		return models.StatusHigh
	default:
		return models.StatusOK
	}
}

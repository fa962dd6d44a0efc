package cmd

// NumberParser converts value tokens of numeric arguments.
// Implementations must be safe for concurrent use.
type NumberParser interface {
	// ParseUnsignedInteger rejects signs and anything that is not a decimal digit.
	ParseUnsignedInteger(text string) (uint64, error)

	// ParseInteger accepts an optional leading sign.
	ParseInteger(text string) (int64, error)

	// ParseFloat accepts decimal and exponential notation.
	ParseFloat(text string) (float64, error)
}

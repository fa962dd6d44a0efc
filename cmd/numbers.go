package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StrconvNumbers is the default NumberParser. It only accepts plain base-10
// notation: no underscores, no hex, no NaN or infinities.
type StrconvNumbers struct{}

func (StrconvNumbers) ParseUnsignedInteger(text string) (uint64, error) {
	return strconv.ParseUint(text, 10, 64)
}

func (StrconvNumbers) ParseInteger(text string) (int64, error) {
	return strconv.ParseInt(text, 10, 64)
}

func (StrconvNumbers) ParseFloat(text string) (float64, error) {
	if strings.ContainsAny(text, "_xXpP") {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: text, Err: strconv.ErrSyntax}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number: %w", text, strconv.ErrSyntax)
	}
	return v, nil
}

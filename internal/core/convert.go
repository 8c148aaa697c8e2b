package core

// convert.go turns the strings a user types into amounts, and amounts back
// into the text shown in table cells.
//
// Input must be a plain number: an optional sign, digits with at most one
// decimal point, and an optional exponent. Currency symbols and thousands
// separators are rejected, so "1,5" never turns into 15. The mantissa is
// scanned through pgtype.Numeric and the exponent is applied to its scale.
// Output is plain: the shortest decimal form, with a "$" prefix for money
// columns.

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var (
	errEmptyNumber   = errors.New("invalid number: empty")
	errInvalidNumber = errors.New("invalid number")
)

// ToPgNumeric converts a string to pgtype.Numeric.
// Surrounding whitespace is ignored; anything that is not a plain number
// (see numericRegex) gives an invalid Numeric.
func ToPgNumeric(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	mantissa, exp := s, int64(0)
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.ParseInt(s[i+1:], 10, 32)
		if err != nil {
			return pgtype.Numeric{Valid: false}
		}
		mantissa, exp = s[:i], e
	}

	var n pgtype.Numeric
	if err := n.Scan(mantissa); err != nil {
		return pgtype.Numeric{Valid: false}
	}

	exp += int64(n.Exp)
	if exp < math.MinInt32 || exp > math.MaxInt32 {
		return pgtype.Numeric{Valid: false}
	}
	n.Exp = int32(exp)

	return n
}

// ParseAmount parses a user-entered price or quantity.
// Empty input, non-numeric text and values outside float64 range are errors.
func ParseAmount(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, errEmptyNumber
	}

	n := ToPgNumeric(s)
	if !n.Valid {
		return 0, errInvalidNumber
	}

	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return 0, errInvalidNumber
	}
	if math.IsInf(f.Float64, 0) || math.IsNaN(f.Float64) {
		return 0, errInvalidNumber
	}

	return f.Float64, nil
}

// FormatAmount renders f in its shortest decimal form: 5 -> "5", 2.5 -> "2.5".
func FormatAmount(f float64) string {
	if f == 0 {
		// Avoid "-0".
		f = 0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatDollar renders f as a dollar amount: 5 -> "$5".
func FormatDollar(f float64) string {
	return "$" + FormatAmount(f)
}

// Package currency renders amounts as Colombian pesos.
package currency

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// plainNumber is the only string syntax Format treats as an amount. Hex,
// exponents, underscores and trailing text are left as they are.
var plainNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

const (
	symbol       = "$ "
	groupSep     = "."
	notAvailable = "N/A"
)

// Format renders v as whole Colombian pesos with "." thousands grouping,
// e.g. 15000 becomes "$ 15.000". Strings holding a number are formatted
// too when they are plain decimals ("45000", "-12.5"); any other string,
// including "0x10", "1e3" or "12abc", is returned unchanged. nil renders as
// "N/A".
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return notAvailable
	case *float64:
		if val == nil {
			return notAvailable
		}
		return FormatAmount(*val)
	case float64:
		return FormatAmount(val)
	case float32:
		return FormatAmount(float64(val))
	case int:
		return FormatAmount(float64(val))
	case int64:
		return FormatAmount(float64(val))
	case json.Number:
		return Format(string(val))
	case string:
		trimmed := strings.TrimSpace(val)
		if !plainNumber.MatchString(trimmed) {
			return val
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsInf(f, 0) {
			return val
		}
		return FormatAmount(f)
	default:
		return fmt.Sprint(v)
	}
}

// FormatAmount renders a numeric amount rounded to whole pesos.
func FormatAmount(amount float64) string {
	rounded := math.Round(amount)
	sign := ""
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	return sign + symbol + group(strconv.FormatFloat(rounded, 'f', 0, 64))
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(groupSep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

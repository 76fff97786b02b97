package match

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

var (
	// grouped thousands or a plain digit run, optional 0-2 decimals
	reAmountBody = regexp.MustCompile(`^(\d{1,3}(,\d{3})+|\d+)(\.\d{0,2})?$`)
	// what a fragment of an amount can look like before parsing
	reNumericish = regexp.MustCompile(`^[\d,.\-$£€¥()]+$`)

	currencyPrefixes = []string{"$", "£", "€", "¥", "usd"}
)

const maxAmountDigits = 15

// ParseAmount reads a printed monetary amount, e.g. "$1,234.56", "(500.00)", "-7".
// Tokens that fail the rule (page numbers, form codes) are rejected.
func ParseAmount(text string, rule entity.AmountRule) (entity.Amount, bool) {
	s := strings.TrimSpace(text)
	s = strings.TrimRight(s, "|,;:")

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	for {
		trimmed := strings.TrimSpace(s)
		if strings.HasPrefix(trimmed, "-") {
			if neg {
				return 0, false
			}
			neg = true
			trimmed = trimmed[1:]
		}
		for _, p := range currencyPrefixes {
			if len(trimmed) >= len(p) && strings.EqualFold(trimmed[:len(p)], p) {
				trimmed = trimmed[len(p):]
				break
			}
		}
		if trimmed == strings.TrimSpace(s) {
			break
		}
		s = trimmed
	}
	s = strings.TrimSpace(s)

	if !reAmountBody.MatchString(s) {
		return 0, false
	}
	if neg && !rule.AllowNegative {
		return 0, false
	}

	intPart, frac, hasPoint := strings.Cut(s, ".")
	hasComma := strings.Contains(intPart, ",")
	intPart = strings.ReplaceAll(intPart, ",", "")
	digits := len(intPart) + len(frac)
	if len(intPart) > maxAmountDigits {
		return 0, false
	}

	switch {
	case rule.RequireDecimalPoint && !hasPoint:
		return 0, false
	case rule.MinDigits > 0 && digits < rule.MinDigits:
		return 0, false
	case !rule.RequireDecimalPoint && rule.MinDigits == 0 && !hasPoint && !hasComma && digits < 3:
		return 0, false
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, false
	}
	for len(frac) < 2 {
		frac += "0"
	}
	cents, _ := strconv.ParseInt(frac, 10, 64)

	a := entity.NewAmount(units, cents)
	if neg {
		a = -a
	}
	return a, true
}

func isNumericish(s string) bool {
	return reNumericish.MatchString(strings.TrimRight(strings.TrimSpace(s), "|,;:"))
}

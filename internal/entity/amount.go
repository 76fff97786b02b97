package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a fixed-point decimal with two fractional digits, stored in cents.
type Amount int64

// NewAmount builds an Amount from whole units and cents.
func NewAmount(units, cents int64) Amount {
	if units < 0 {
		return Amount(units*100 - cents)
	}
	return Amount(units*100 + cents)
}

func (a Amount) Float64() float64 { return float64(a) / 100 }

// String renders the plain decimal form, e.g. "1234.56", "-7", "12.5".
func (a Amount) String() string {
	neg := a < 0
	c := int64(a)
	if neg {
		c = -c
	}
	s := strconv.FormatInt(c/100, 10)
	if frac := c % 100; frac != 0 {
		f := strings.TrimRight(fmt.Sprintf("%02d", frac), "0")
		s += "." + f
	}
	if neg {
		s = "-" + s
	}
	return s
}

// Currency renders the amount the way the table view shows it: "$1,234".
func (a Amount) Currency() string {
	c := int64(a)
	neg := c < 0
	if neg {
		c = -c
	}
	whole := c / 100
	if c%100 >= 50 {
		whole++
	}
	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// MarshalJSON encodes the amount as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

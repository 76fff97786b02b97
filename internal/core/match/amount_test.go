package match

import (
	"testing"

	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

func TestParseAmount(t *testing.T) {
	lenient := entity.AmountRule{AllowNegative: true}

	tests := []struct {
		name   string
		text   string
		rule   entity.AmountRule
		want   string
		wantOK bool
	}{
		{name: "currency and separators", text: "$1,234.56", want: "1234.56", wantOK: true},
		{name: "iso code", text: "USD 2,500", want: "2500", wantOK: true},
		{name: "euro", text: "€99.5", want: "99.5", wantOK: true},
		{name: "three digits", text: "250", want: "250", wantOK: true},
		{name: "trailing ocr pipe", text: "1,000|", want: "1000", wantOK: true},
		{name: "short integer is a page number", text: "17", wantOK: false},
		{name: "parentheses negative", text: "(300.00)", rule: lenient, want: "-300", wantOK: true},
		{name: "minus before currency", text: "-$45.10", rule: lenient, want: "-45.1", wantOK: true},
		{name: "negative rejected by default", text: "-45.10", wantOK: false},
		{name: "double negative", text: "(-5.00)", rule: lenient, wantOK: false},
		{name: "bad grouping", text: "12,34.00", wantOK: false},
		{name: "three decimals", text: "1.234", wantOK: false},
		{name: "letters", text: "1O0.00", wantOK: false},
		{name: "empty", text: "", wantOK: false},
		{name: "decimal required", text: "1,000", rule: entity.AmountRule{RequireDecimalPoint: true}, wantOK: false},
		{name: "min digits met", text: "42", rule: entity.AmountRule{MinDigits: 2}, want: "42", wantOK: true},
		{name: "min digits missed", text: "4.5", rule: entity.AmountRule{MinDigits: 3}, wantOK: false},
		{name: "too long", text: "1234567890123456", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.text, tt.rule)
			if ok != tt.wantOK {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v (got %v)", tt.text, ok, tt.wantOK, got)
			}
			if ok && got.String() != tt.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

package entity

import (
	"fmt"
	"strings"
)

// Direction is where the matcher looks for an amount relative to its label.
type Direction int

const (
	DirectionRight Direction = iota
	DirectionBelow
	DirectionLeft
)

func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "RIGHT"
	case DirectionBelow:
		return "BELOW"
	case DirectionLeft:
		return "LEFT"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	switch d {
	case DirectionRight, DirectionBelow, DirectionLeft:
		return []byte(d.String()), nil
	}
	return nil, fmt.Errorf("unknown direction %d", int(d))
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDirection accepts RIGHT, BELOW or LEFT in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RIGHT":
		return DirectionRight, nil
	case "BELOW":
		return DirectionBelow, nil
	case "LEFT":
		return DirectionLeft, nil
	}
	return 0, fmt.Errorf("unknown search direction %q", s)
}

// Confidence is the match status of an extracted field. It is a tag, not a score.
type Confidence int

const (
	ConfidenceNotFound Confidence = iota
	ConfidenceMatched
)

func (c Confidence) String() string {
	if c == ConfidenceMatched {
		return "MATCHED"
	}
	return "NOT_FOUND"
}

func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// AmountRule filters numeric-looking tokens that are not amounts (page numbers, form codes).
type AmountRule struct {
	RequireDecimalPoint bool `yaml:"require_decimal_point,omitempty" json:"require_decimal_point,omitempty"`
	MinDigits           int  `yaml:"min_digits,omitempty" json:"min_digits,omitempty"`
	AllowNegative       bool `yaml:"allow_negative,omitempty" json:"allow_negative,omitempty"`
}

// FieldDefinition is one entry of the static field catalog. Read-only during a run.
type FieldDefinition struct {
	ID          string    `yaml:"id" json:"id"`
	Aliases     []string  `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Direction   Direction `yaml:"search_direction" json:"search_direction"`
	MaxOffsetPx int       `yaml:"max_offset_px" json:"max_offset_px"`

	// MaxSpanPx bounds the distance along the search axis; 0 falls back to MaxOffsetPx.
	MaxSpanPx int `yaml:"max_span_px,omitempty" json:"max_span_px,omitempty"`
	// LabelMaxXRatio keeps labels whose left edge is within this fraction of the page width.
	LabelMaxXRatio float64 `yaml:"label_max_x_ratio,omitempty" json:"label_max_x_ratio,omitempty"`
	// MinXRatio keeps candidates whose left edge is beyond this fraction of the page width.
	MinXRatio float64 `yaml:"min_x_ratio,omitempty" json:"min_x_ratio,omitempty"`

	Amount AmountRule `yaml:"amount,omitempty" json:"amount,omitempty"`
}

// Labels returns the id followed by its aliases.
func (f FieldDefinition) Labels() []string {
	out := make([]string, 0, 1+len(f.Aliases))
	out = append(out, f.ID)
	return append(out, f.Aliases...)
}

// ExtractedField is the matcher's verdict for one FieldDefinition.
type ExtractedField struct {
	FieldID    string     `json:"field_id"`
	Amount     *Amount    `json:"amount"`
	Confidence Confidence `json:"confidence"`
}

// TaxResult is the exported shape of a tax extraction.
type TaxResult struct {
	Fields []ExtractedField `json:"fields"`
}

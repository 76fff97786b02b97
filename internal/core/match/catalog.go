package match

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

// Default geometry for the 1040-style box ids, in pixels at 300 DPI.
const (
	DefaultMaxOffsetPx    = 40   // about one text line
	DefaultMaxSpanPx      = 3000 // the whole page width
	DefaultLabelMaxXRatio = 0.40
	DefaultMinXRatio      = 0.60
)

// DefaultTaxFieldIDs are the line numbers looked up on a tax return.
var DefaultTaxFieldIDs = []string{"4", "7", "10", "14", "15", "16", "17"}

// Catalog is the on-disk shape of a field catalog.
type Catalog struct {
	Fields []entity.FieldDefinition `yaml:"fields"`
}

// DefaultTaxCatalog returns a fresh copy of the built-in tax field catalog.
func DefaultTaxCatalog() []entity.FieldDefinition {
	fields := make([]entity.FieldDefinition, 0, len(DefaultTaxFieldIDs))
	for _, id := range DefaultTaxFieldIDs {
		fields = append(fields, entity.FieldDefinition{
			ID:             id,
			Direction:      entity.DirectionRight,
			MaxOffsetPx:    DefaultMaxOffsetPx,
			MaxSpanPx:      DefaultMaxSpanPx,
			LabelMaxXRatio: DefaultLabelMaxXRatio,
			MinXRatio:      DefaultMinXRatio,
			Amount:         entity.AmountRule{AllowNegative: true},
		})
	}
	return fields
}

// LoadCatalog reads and validates a YAML field catalog.
func LoadCatalog(path string) ([]entity.FieldDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewInputError("cannot read field catalog "+path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML field catalog.
func ParseCatalog(data []byte) ([]entity.FieldDefinition, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, common.NewConfigError("invalid field catalog", err)
	}
	if err := ValidateCatalog(c.Fields); err != nil {
		return nil, err
	}
	return c.Fields, nil
}

// ValidateCatalog checks ids, geometry and ratios of every field.
func ValidateCatalog(fields []entity.FieldDefinition) error {
	v := common.NewValidator()
	if len(fields) == 0 {
		v.Add("fields", nil, "catalog has no fields")
	}
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		name := fmt.Sprintf("fields[%d]", i)
		v.Field(name+".id", f.ID, common.Required).
			Field(name+".max_offset_px", f.MaxOffsetPx, common.Positive).
			Field(name+".max_span_px", f.MaxSpanPx, common.IntRange(0, 1<<20)).
			Field(name+".label_max_x_ratio", f.LabelMaxXRatio, common.FloatRange(0, 1)).
			Field(name+".min_x_ratio", f.MinXRatio, common.FloatRange(0, 1)).
			Field(name+".amount.min_digits", f.Amount.MinDigits, common.IntRange(0, maxAmountDigits))
		if _, err := f.Direction.MarshalText(); err != nil {
			v.Add(name+".search_direction", f.Direction, err.Error())
		}
		if normalizeLabel(f.ID) == "" && f.ID != "" {
			v.Add(name+".id", f.ID, "is only punctuation")
		}
		if seen[f.ID] {
			v.Add(name+".id", f.ID, "is duplicated")
		}
		seen[f.ID] = true
	}
	return common.ValidateAndReturnError(v)
}

// MarshalCatalog renders fields as a YAML catalog that LoadCatalog accepts.
func MarshalCatalog(fields []entity.FieldDefinition) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Catalog{Fields: fields}); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TaxMode represents how menu prices relate to tax
type TaxMode int

const (
	TaxModeExclusive TaxMode = 0
	TaxModeInclusive TaxMode = 1
)

func (t TaxMode) String() string {
	names := [...]string{"Exclusive", "Inclusive"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Exclusive"
	}
	return names[t]
}

func (t TaxMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TaxMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = TaxMode(i)
		return nil
	}
	switch str {
	case "Exclusive":
		*t = TaxModeExclusive
	case "Inclusive":
		*t = TaxModeInclusive
	}
	return nil
}

// ParseTaxMode converts a request value to a TaxMode
func ParseTaxMode(s string) (TaxMode, error) {
	switch strings.ToLower(s) {
	case "exclusive":
		return TaxModeExclusive, nil
	case "inclusive":
		return TaxModeInclusive, nil
	}
	return TaxModeExclusive, fmt.Errorf("unknown tax mode %q", s)
}

func (t TaxMode) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TaxMode) Scan(value interface{}) error {
	if value == nil {
		*t = TaxModeExclusive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TaxMode(v)
	case int:
		*t = TaxMode(v)
	}
	return nil
}

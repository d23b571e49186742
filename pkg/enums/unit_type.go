package enums

import (
	"fmt"
	"strings"
)

// UnitType is the measurement unit a product quantity is expressed in.
type UnitType string

const (
	UnitPiece UnitType = "piece"
	UnitKg    UnitType = "kg"
	UnitGram  UnitType = "g"
	UnitLiter UnitType = "l"
	UnitMl    UnitType = "ml"
	UnitDozen UnitType = "dozen"
	UnitPack  UnitType = "pack"
	UnitBox   UnitType = "box"
	UnitPair  UnitType = "pair"
	UnitSet   UnitType = "set"
)

var unitTypes = []UnitType{
	UnitPiece, UnitKg, UnitGram, UnitLiter, UnitMl,
	UnitDozen, UnitPack, UnitBox, UnitPair, UnitSet,
}

func (u UnitType) String() string {
	return string(u)
}

func (u UnitType) IsValid() bool {
	for _, known := range unitTypes {
		if u == known {
			return true
		}
	}
	return false
}

func ParseUnitType(value string) (UnitType, error) {
	parsed := UnitType(strings.ToLower(strings.TrimSpace(value)))
	if !parsed.IsValid() {
		return "", fmt.Errorf("invalid unit type %q", value)
	}
	return parsed, nil
}

// UnitTypeValues lists every accepted unit, used in validation messages.
func UnitTypeValues() []string {
	values := make([]string, len(unitTypes))
	for i, u := range unitTypes {
		values[i] = string(u)
	}
	return values
}

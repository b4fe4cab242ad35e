package vartable

import (
	"fmt"
	"strconv"
	"strings"
)

// MissingValue is how VCF spells an absent scalar.
const MissingValue = "."

func columnTypeOf(vt ValueType) ColumnType {
	switch vt {
	case TypeInteger:
		return ColumnInteger
	case TypeFloat:
		return ColumnFloat
	case TypeFlag:
		return ColumnBool
	}
	return ColumnString
}

// coerce converts one raw scalar to the Go type of its declared ValueType.
// Flags are handled by the caller since only their presence matters.
func coerce(vt ValueType, raw string) (interface{}, error) {
	if raw == MissingValue || raw == "" {
		return nil, nil
	}

	switch vt {
	case TypeInteger:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an Integer: %w", raw, err)
		}
		return v, nil
	case TypeFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a Float: %w", raw, err)
		}
		return v, nil
	}

	return raw, nil
}

// joinValues renders a variable length field as one string column.
func joinValues(raw []string) string {
	return strings.Join(raw, ",")
}

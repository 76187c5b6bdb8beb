package domain

import (
	"fmt"
	"strings"
)

type PayType string

const (
	PayRegular  PayType = "Regular"
	PayOvertime PayType = "Overtime"
)

// ParsePayType normalizes a raw pay type string. Comparison is
// case-insensitive; surrounding whitespace is ignored.
func ParsePayType(raw string) (PayType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "regular":
		return PayRegular, nil
	case "overtime":
		return PayOvertime, nil
	default:
		return "", fmt.Errorf("unknown pay type %q", raw)
	}
}

type PayChangeKind string

const (
	ChangeInitial PayChangeKind = "initial"
	ChangeUpdate  PayChangeKind = "update"
)

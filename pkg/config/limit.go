// File: pkg/config/limit.go
package config

import (
	"regexp"
	"strconv"
	"strings"
)

// limitPattern accepts a decimal number with an optional b/kB unit.
var limitPattern = regexp.MustCompile(`(?i)^([\d.]+)\s*(kb|b)?$`)

// Limit is an optional byte threshold. The zero value means "no limit".
type Limit struct {
	bytes float64
	set   bool
}

// NoLimit is the report-only limit.
var NoLimit = Limit{}

// LimitOf returns a Limit of exactly n bytes.
func LimitOf(n float64) Limit {
	return Limit{bytes: n, set: true}
}

// ParseLimit converts strings like "50kb", "10 KB", "500b" or "50" into a Limit.
// A missing unit means kilobytes; one kilobyte is 1000 bytes.
// Malformed input yields NoLimit.
func ParseLimit(input string) Limit {
	m := limitPattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return NoLimit
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return NoLimit
	}
	if strings.EqualFold(m[2], "b") {
		return LimitOf(n)
	}
	return LimitOf(n * 1000)
}

// Bytes returns the threshold and whether one is set.
func (l Limit) Bytes() (float64, bool) {
	return l.bytes, l.set
}

// IsSet reports whether a threshold is configured.
func (l Limit) IsSet() bool {
	return l.set
}

// Allows reports whether size fits under the limit. Always true without a limit.
func (l Limit) Allows(size int64) bool {
	return !l.set || float64(size) <= l.bytes
}

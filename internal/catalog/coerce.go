package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var emptySkillMarkers = map[string]struct{}{
	"nan":  {},
	"none": {},
	"null": {},
	"[]":   {},
}

// ToInt coerces an export field to an integer. Strings lose thousands
// separators and spaces and are parsed as a float, then truncated.
func ToInt(v gjson.Result) *int {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		n := 1
		return &n
	case gjson.False:
		n := 0
		return &n
	}
	f, ok := parseLooseFloat(v.String())
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return nil
	}
	n := int(f)
	return &n
}

// ToFloat coerces an export field to a float with the same cleaning as
// ToInt. Values with trailing text such as "4.5 out of 5" are rejected.
func ToFloat(v gjson.Result) *float64 {
	switch v.Type {
	case gjson.Null, gjson.True, gjson.False:
		return nil
	}
	f, ok := parseLooseFloat(v.String())
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseLooseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CleanBracedSetText flattens set-like text such as
// `{"Computer Science","Business & Management"}` to
// `Computer Science,Business & Management`.
func CleanBracedSetText(v gjson.Result) *string {
	if v.Type == gjson.Null {
		return nil
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, `\"`, `"`))
	s = strings.TrimSpace(strings.Trim(s, `"`))
	s = strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return nil
	}
	return &s
}

// optString returns the field's text, or nil when it is absent or null.
func optString(v gjson.Result) *string {
	if v.Type == gjson.Null {
		return nil
	}
	s := v.String()
	return &s
}

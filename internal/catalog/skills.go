package catalog

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ParseSkills turns a course "skills" field into an ordered, de-duplicated
// list of skill names. The field is usually a JSON list encoded as a
// string, sometimes a Python list literal, and sometimes a list of dict-like
// strings such as "{'skill': 'Cloud Computing'}".
func ParseSkills(v gjson.Result) []string {
	switch v.Type {
	case gjson.Null:
		return []string{}
	case gjson.JSON:
		if v.IsArray() {
			return skillNames(fromJSON(v).([]any))
		}
	}

	s := strings.TrimSpace(v.String())
	if s == "" {
		return []string{}
	}
	if _, ok := emptySkillMarkers[strings.ToLower(s)]; ok {
		return []string{}
	}
	return ParseSkillsText(s)
}

// ParseSkillsText tries JSON, then a Python literal, then treats the text
// as a single skill.
func ParseSkillsText(s string) []string {
	var items []any
	if gjson.Valid(s) {
		switch parsed := fromJSON(gjson.Parse(s)).(type) {
		case []any:
			items = parsed
		default:
			items = []any{parsed}
		}
	} else if parsed, err := parsePyLiteral(s); err == nil {
		if list, ok := parsed.([]any); ok {
			items = list
		} else {
			items = []any{parsed}
		}
	} else {
		return []string{s}
	}
	return skillNames(items)
}

func skillNames(items []any) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch t := it.(type) {
		case nil:
			continue
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				continue
			}
			if strings.HasPrefix(s, "{") && strings.Contains(s, "skill") {
				if d, err := parsePyLiteral(s); err == nil {
					if m, ok := d.(map[string]any); ok {
						if name, ok := skillFromDict(m); ok {
							out = append(out, name)
							continue
						}
					}
				}
			}
			out = append(out, s)
		case map[string]any:
			if name, ok := skillFromDict(t); ok {
				out = append(out, name)
			}
		default:
			out = append(out, strings.TrimSpace(pyStr(t)))
		}
	}
	return dedupe(out)
}

// skillFromDict picks the first truthy of "skill" and "name".
func skillFromDict(m map[string]any) (string, bool) {
	for _, k := range []string{"skill", "name"} {
		v, ok := m[k]
		if !ok || !truthy(v) {
			continue
		}
		if s := strings.TrimSpace(pyStr(v)); s != "" {
			return s, true
		}
		return "", false
	}
	return "", false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// fromJSON converts a gjson value into the same shapes parsePyLiteral
// produces, keeping integers distinct from floats.
func fromJSON(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.String:
		return r.Str
	case gjson.Number:
		if !strings.ContainsAny(r.Raw, ".eE") {
			return r.Int()
		}
		return r.Num
	}
	if r.IsArray() {
		arr := r.Array()
		out := make([]any, 0, len(arr))
		for _, e := range arr {
			out = append(out, fromJSON(e))
		}
		return out
	}
	m := map[string]any{}
	r.ForEach(func(k, v gjson.Result) bool {
		m[k.String()] = fromJSON(v)
		return true
	})
	return m
}

package recommend

import (
	"context"
	_ "embed"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

//go:embed courses.json
var bundledCourses []byte

var ErrMalformedCourseMap = errors.New("malformed course map")

// StaticCatalog is a read-only skill to course list table.
type StaticCatalog struct {
	courses map[string][]Candidate
}

// LoadStaticCatalog parses {"skill": [{"title","url","provider","popularity"}]}.
// Keys are lower-cased.
func LoadStaticCatalog(data []byte) (*StaticCatalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedCourseMap
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrMalformedCourseMap
	}

	out := map[string][]Candidate{}
	var bad bool
	root.ForEach(func(k, v gjson.Result) bool {
		if !v.IsArray() {
			bad = true
			return false
		}
		skill := strings.ToLower(strings.TrimSpace(k.String()))
		for _, c := range v.Array() {
			cand := Candidate{
				Title:    c.Get("title").String(),
				URL:      c.Get("url").String(),
				Provider: c.Get("provider").String(),
			}
			if p := c.Get("popularity"); p.Type == gjson.Number {
				f := p.Float()
				cand.Popularity = &f
			}
			out[skill] = append(out[skill], cand)
		}
		return true
	})
	if bad {
		return nil, ErrMalformedCourseMap
	}
	return &StaticCatalog{courses: out}, nil
}

// DefaultStaticCatalog loads the course map bundled with the binary.
func DefaultStaticCatalog() (*StaticCatalog, error) {
	return LoadStaticCatalog(bundledCourses)
}

func (*StaticCatalog) Name() string { return "static" }

func (s *StaticCatalog) Candidates(_ context.Context, skill string, limit int) ([]Candidate, error) {
	list := s.courses[strings.ToLower(strings.TrimSpace(skill))]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	out := make([]Candidate, len(list))
	copy(out, list)
	return out, nil
}

func (s *StaticCatalog) Len() int { return len(s.courses) }

package gap

import (
	"reflect"
	"testing"
)

func TestMissing(t *testing.T) {
	cases := []struct {
		name string
		cv   []string
		jd   []string
		want []string
	}{
		{
			name: "end to end example",
			cv:   []string{"Python", "SQL"},
			jd:   []string{"Python", "SQL", "Docker"},
			want: []string{"docker"},
		},
		{
			name: "case and whitespace insensitive",
			cv:   []string{"  python ", "sql"},
			jd:   []string{"PYTHON", " Sql", "Kubernetes", "AWS"},
			want: []string{"aws", "kubernetes"},
		},
		{
			name: "duplicates collapse",
			cv:   nil,
			jd:   []string{"git", "Git", "GIT ", "css"},
			want: []string{"css", "git"},
		},
		{
			name: "empty names ignored",
			cv:   []string{""},
			jd:   []string{"", "   ", "linux"},
			want: []string{"linux"},
		},
		{
			name: "no jd entities",
			cv:   []string{"python"},
			jd:   nil,
			want: []string{},
		},
		{
			name: "cv superset",
			cv:   []string{"python", "sql", "docker"},
			jd:   []string{"docker"},
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Missing(tc.cv, tc.jd)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Missing(%v, %v) = %v, want %v", tc.cv, tc.jd, got, tc.want)
			}
		})
	}
}

// Results are lower-cased JD strings, not the JD's original casing.
func TestMissing_ReturnsLowercaseNotOriginalCasing(t *testing.T) {
	got := Missing(nil, []string{"PostgreSQL", "TensorFlow"})
	want := []string{"postgresql", "tensorflow"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMissing_Sorted(t *testing.T) {
	got := Missing(nil, []string{"z", "b", "a", "c"})
	want := []string{"a", "b", "c", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

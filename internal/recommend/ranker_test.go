package recommend

import "testing"

func TestInferLevel(t *testing.T) {
	cases := map[string]int{
		"Docker for Beginners":          3,
		"Introduction to Kubernetes":    3,
		"SQL Fundamentals":              3,
		"Intermediate SQL":              2,
		"Advanced Docker Networking":    1,
		"Docker Deep Dive":              2,
		"Advanced Introduction to Rust": 3,
	}
	for title, want := range cases {
		if got := InferLevel(title); got != want {
			t.Fatalf("InferLevel(%q) = %d, want %d", title, got, want)
		}
	}
}

func TestJDPriority(t *testing.T) {
	jd := []string{"Docker", "docker", "DOCKER", "sql", "sql", "git"}
	cases := map[string]int{"docker": 3, "SQL": 2, "git": 1, "rust": 0}
	for skill, want := range cases {
		if got := JDPriority(skill, jd); got != want {
			t.Fatalf("JDPriority(%q) = %d, want %d", skill, got, want)
		}
	}
}

func TestMissingBoost(t *testing.T) {
	missing := []string{"docker", "aws"}
	if got := MissingBoost("Docker", missing); got != 3 {
		t.Fatalf("expected boost 3, got %d", got)
	}
	if got := MissingBoost("python", missing); got != 0 {
		t.Fatalf("expected boost 0, got %d", got)
	}
}

func TestRank_TopThreeStable(t *testing.T) {
	pop := func(f float64) *float64 { return &f }
	cands := []Candidate{
		{Title: "Docker Deep Dive", URL: "a"},
		{Title: "Docker for Beginners", URL: "b"},
		{Title: "Advanced Docker", URL: "c", Popularity: pop(5)},
		{Title: "Docker in Practice", URL: "d"},
		{Title: "Intermediate Docker", URL: "e"},
	}

	got := Rank("docker", cands, nil, nil)
	if len(got) != TopK {
		t.Fatalf("expected %d results, got %d", TopK, len(got))
	}
	want := []string{"c", "b", "a"}
	for i, u := range want {
		if got[i].URL != u {
			t.Fatalf("position %d: expected %s, got %s", i, u, got[i].URL)
		}
	}
}

func TestScore(t *testing.T) {
	pop := 1.5
	c := Candidate{Title: "Introduction to AWS", Popularity: &pop}
	got := Score("AWS", c, []string{"aws", "aws"}, []string{"aws"})
	if want := 3.0 + 2 + 3 + 1.5; got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRank_FewerThanTopK(t *testing.T) {
	got := Rank("x", []Candidate{{URL: "only"}}, nil, nil)
	if len(got) != 1 || got[0].URL != "only" {
		t.Fatalf("unexpected ranking: %+v", got)
	}
	if got := Rank("x", nil, nil, nil); len(got) != 0 {
		t.Fatalf("expected empty ranking, got %+v", got)
	}
}

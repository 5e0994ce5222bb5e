package canvas

import "testing"

func TestParsePageResult(t *testing.T) {
	header := `<https://canvas.test/api/v1/courses?page=2&per_page=10>; rel="next",` +
		`<https://canvas.test/api/v1/courses?page=1&per_page=10>; rel="first",` +
		`<https://canvas.test/api/v1/courses?page=5&per_page=10>; rel="last"`

	res := parsePageResult(header)

	if res.NextURL != "https://canvas.test/api/v1/courses?page=2&per_page=10" {
		t.Errorf("unexpected next URL: %q", res.NextURL)
	}
	if res.LastURL != "https://canvas.test/api/v1/courses?page=5&per_page=10" {
		t.Errorf("unexpected last URL: %q", res.LastURL)
	}
	if !res.HasNext() {
		t.Error("expected HasNext to be true")
	}
	if got := res.NextPage(); got != 2 {
		t.Errorf("NextPage() = %d, want 2", got)
	}
}

func TestParsePageResult_LastPage(t *testing.T) {
	header := `<https://canvas.test/api/v1/courses?page=1&per_page=10>; rel="first"`

	res := parsePageResult(header)

	if res.HasNext() {
		t.Error("expected HasNext to be false on the last page")
	}
	if got := res.NextPage(); got != 0 {
		t.Errorf("NextPage() = %d, want 0", got)
	}
}

func TestParsePageResult_Malformed(t *testing.T) {
	for _, header := range []string{"", "garbage", "<unclosed; rel=\"next\""} {
		res := parsePageResult(header)
		if res.HasNext() {
			t.Errorf("parsePageResult(%q).HasNext() = true, want false", header)
		}
	}
}

func TestListOptionsQuery(t *testing.T) {
	var nilOpts *ListOptions
	if q := nilOpts.query(); len(q) != 0 {
		t.Errorf("nil options produced query %v", q)
	}

	q := (&ListOptions{Page: 3, PerPage: 50}).query()
	if q.Get("page") != "3" {
		t.Errorf("page = %q, want 3", q.Get("page"))
	}
	if q.Get("per_page") != "50" {
		t.Errorf("per_page = %q, want 50", q.Get("per_page"))
	}

	q = (&ListOptions{}).query()
	if len(q) != 0 {
		t.Errorf("zero options produced query %v", q)
	}
}

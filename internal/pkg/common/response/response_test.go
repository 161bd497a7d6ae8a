package response

import (
	"encoding/json"
	"net/url"
	"testing"
)

func TestBuildPageLinks(t *testing.T) {
	base, _ := url.Parse("/api/v1/banks?page=2&page_size=10")

	prev, next := BuildPageLinks(base, 2, 10, 35)
	if prev.String() != "/api/v1/banks?page=1&page_size=10" {
		t.Errorf("prev = %q", prev.String())
	}
	if next.String() != "/api/v1/banks?page=3&page_size=10" {
		t.Errorf("next = %q", next.String())
	}

	prev, next = BuildPageLinks(base, 4, 10, 35)
	if next.String() != "" {
		t.Errorf("last page should have no next link, got %q", next.String())
	}
	if prev.String() == "" {
		t.Errorf("last page should have a previous link")
	}

	prev, next = BuildPageLinks(base, 1, 10, 0)
	if prev.String() != "" || next.String() != "" {
		t.Errorf("empty collection should have no links, got %q %q", prev.String(), next.String())
	}
}

func TestResponse_MarshalJSON(t *testing.T) {
	n := 1
	next, _ := url.Parse("/api/v1/banks?page=2")
	b, err := json.Marshal(Response{Count: &n, Next: *next, Results: []string{"root"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"count":1,"next":"/api/v1/banks?page=2","results":["root"]}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}

	b, _ = json.Marshal(Response{Detail: "bank \"x\" not found in bank_table"})
	if string(b) != `{"detail":"bank \"x\" not found in bank_table"}` {
		t.Errorf("unexpected error body %s", b)
	}
}

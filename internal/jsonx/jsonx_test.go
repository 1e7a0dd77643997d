package jsonx

import (
	"testing"
)

type page struct {
	Title string   `json:"title"`
	Links []string `json:"links"`
}

// TestDecodeLenient_ValidJSON verifies that well-formed JSON decodes without
// entering the repair path.
func TestDecodeLenient_ValidJSON(t *testing.T) {
	body := []byte(`{"title":"Press release","links":["https://a.example","https://b.example"]}`)

	got, err := DecodeLenient[page](body)
	if err != nil {
		t.Fatalf("DecodeLenient() unexpected error: %v", err)
	}
	if got.Title != "Press release" {
		t.Errorf("Title = %q, want %q", got.Title, "Press release")
	}
	if len(got.Links) != 2 {
		t.Errorf("len(Links) = %d, want 2", len(got.Links))
	}
}

// TestDecodeLenient_RepairableJSON covers the payloads that motivated the
// package: unquoted keys, single quotes, and trailing commas.
func TestDecodeLenient_RepairableJSON(t *testing.T) {
	testCases := []struct {
		name      string
		body      string
		wantTitle string
	}{
		{
			name:      "unquoted keys and single quotes",
			body:      `{title: 'Acquisition closes', links: []}`,
			wantTitle: "Acquisition closes",
		},
		{
			name:      "trailing comma",
			body:      `{"title": "Merger update", "links": ["https://a.example"],}`,
			wantTitle: "Merger update",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := DecodeLenient[page]([]byte(testCase.body))
			if err != nil {
				t.Fatalf("DecodeLenient(%q) unexpected error: %v", testCase.body, err)
			}
			if got.Title != testCase.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, testCase.wantTitle)
			}
		})
	}
}

// TestDecodeLenient_Unrepairable verifies that garbage input surfaces an error
// instead of a zero value masquerading as success.
func TestDecodeLenient_Unrepairable(t *testing.T) {
	if _, err := DecodeLenient[page]([]byte(`<html>502 Bad Gateway</html>`)); err == nil {
		t.Error("DecodeLenient() on HTML error page should fail, got nil error")
	}
}

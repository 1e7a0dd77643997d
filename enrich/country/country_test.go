package country

import "testing"

func TestISO2(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "canonical name", input: "Japan", want: "JP"},
		{name: "united kingdom", input: "United Kingdom", want: "GB"},
		{name: "whitespace trimmed", input: "  Germany  ", want: "DE"},
		{name: "unknown", input: "Atlantis", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := ISO2(testCase.input); got != testCase.want {
				t.Errorf("ISO2(%q) = %q, want %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestCurrency(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "japan", input: "Japan", want: "JPY"},
		{name: "united states", input: "United States", want: "USD"},
		{name: "eurozone member", input: "Germany", want: "EUR"},
		{name: "unknown country", input: "Middle Earth", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := Currency(testCase.input); got != testCase.want {
				t.Errorf("Currency(%q) = %q, want %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) < 100 {
		t.Fatalf("Names() returned %d entries, want a full country list", len(names))
	}

	found := false
	for _, name := range names {
		if name == "Singapore" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Names() does not contain Singapore")
	}
}

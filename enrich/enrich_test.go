package enrich

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/leofalp/firmenrich/core/fetch"
)

func TestEnrich_Addresses(t *testing.T) {
	testCases := []struct {
		name         string
		input        Input
		wantState    string
		wantPostcode string
		wantISO      string
		wantCurrency string
	}{
		{
			name: "mumbai state preserved",
			input: Input{
				FirmName: "Acme Capital India",
				FirmType: "investment manager",
				HQ: Office{
					Address: "Prasad Chambers, Opera House, Mumbai, 400004, Maharashtra, India",
					Phone:   "022 1234 5678",
					Fax:     "022 8765 4321",
				},
				ServicesOffered: []string{"asset management", "fund administration"},
				FundsServiced:   []string{"private equity"},
			},
			wantState:    "Maharashtra",
			wantPostcode: "400004",
			wantISO:      "IN",
			wantCurrency: "INR",
		},
		{
			name: "london single postcode",
			input: Input{
				FirmName: "Acme UK",
				FirmType: "fund manager",
				HQ: Office{
					Address: "4 More London Riverside, London, SE1 2AU, United Kingdom",
					Phone:   "+44 20 7946 0958",
				},
			},
			wantPostcode: "SE1 2AU",
			wantISO:      "GB",
			wantCurrency: "GBP",
		},
		{
			name: "munich single postcode",
			input: Input{
				FirmName: "Acme Germany",
				FirmType: "investment firm",
				HQ: Office{
					Address: "Prannerstrasse 15, 80333, Munich, Germany",
					Phone:   "+49 89 123456",
				},
			},
			wantPostcode: "80333",
			wantISO:      "DE",
			wantCurrency: "EUR",
		},
	}

	enricher := New()
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			record := enricher.Enrich(context.Background(), testCase.input)

			if record.FormattedAddress == "" {
				t.Fatal("FormattedAddress empty")
			}
			if testCase.wantPostcode != "" {
				if n := strings.Count(record.FormattedAddress, testCase.wantPostcode); n != 1 {
					t.Errorf("postcode %q appears %d times in %q", testCase.wantPostcode, n, record.FormattedAddress)
				}
			}
			if testCase.wantState != "" && !strings.Contains(record.FormattedAddress, testCase.wantState) {
				t.Errorf("state %q missing from %q", testCase.wantState, record.FormattedAddress)
			}
			if record.CountryISO != testCase.wantISO {
				t.Errorf("CountryISO = %q, want %q", record.CountryISO, testCase.wantISO)
			}
			if record.Currency != testCase.wantCurrency {
				t.Errorf("Currency = %q, want %q", record.Currency, testCase.wantCurrency)
			}
			if testCase.input.HQ.Phone != "" && record.FormattedPhone == "" {
				t.Error("FormattedPhone empty for input with phone")
			}

			// No immediate duplicate lines.
			lines := strings.Split(record.FormattedAddress, "\n")
			for i := 1; i < len(lines); i++ {
				if strings.EqualFold(lines[i], lines[i-1]) {
					t.Errorf("duplicate line %q in %q", lines[i], record.FormattedAddress)
				}
			}

			// No repeated consecutive numeric codes.
			codes := regexp.MustCompile(`\b\d{3,6}\b`).FindAllString(record.FormattedAddress, -1)
			for i := 1; i < len(codes); i++ {
				if codes[i] == codes[i-1] {
					t.Errorf("repeated numeric code %q in %q", codes[i], record.FormattedAddress)
				}
			}
		})
	}
}

func TestEnrich_OfficesIncludeHQAndAlternates(t *testing.T) {
	record := New().Enrich(context.Background(), Input{
		FirmName: "Batch Test",
		FirmType: "advisor",
		HQ:       Office{Address: "Prasad Chambers, Opera House, Mumbai, 400004, Maharashtra, India"},
		AltOffices: []Office{
			{Address: "4 More London Riverside, London, SE1 2AU, United Kingdom"},
			{Address: "Prannerstrasse 15, 80333, Munich, Germany"},
		},
	})

	if len(record.Offices) != 3 {
		t.Fatalf("Offices = %d, want HQ plus two alternates", len(record.Offices))
	}
	for i, office := range record.Offices {
		if office.FormattedAddress == "" {
			t.Errorf("Offices[%d].FormattedAddress empty", i)
		}
	}
}

func TestEnrich_CallerCurrencyWins(t *testing.T) {
	record := New().Enrich(context.Background(), Input{
		HQ:       Office{Address: "1 Main Street, Berlin, Germany"},
		Currency: "CHF",
	})

	if record.Currency != "CHF" {
		t.Errorf("Currency = %q, want caller-supplied CHF", record.Currency)
	}
}

func TestEnrich_AboutUsesStateOverCity(t *testing.T) {
	record := New().Enrich(context.Background(), Input{
		FirmName: "Acme Capital",
		FirmType: "investment manager",
		HQ:       Office{Address: "Prasad Chambers, Opera House, Mumbai, 400004, Maharashtra, India"},
	})

	if !strings.Contains(record.About, "headquartered in Maharashtra") {
		t.Errorf("About = %q, want state as location", record.About)
	}
}

// stubPageFetcher serves one canned HTML page for any URL.
type stubPageFetcher struct {
	html string
	err  error
}

func (f stubPageFetcher) FetchPage(_ context.Context, url string) (fetch.Page, error) {
	if f.err != nil {
		return fetch.Page{}, f.err
	}
	return fetch.Page{URL: url, HTML: f.html}, nil
}

func TestScrapeOffices(t *testing.T) {
	enricher := New(WithFetcher(stubPageFetcher{html: `<html><body>
		<div class="office">
			4 More London Riverside, London, SE1 2AU, United Kingdom
		</div>
		<a href="tel:+442079460958">Call us</a>
		<a href="mailto:info@acme.example">Email</a>
	</body></html>`}))

	offices := enricher.ScrapeOffices(context.Background(), "https://acme.example/contact")

	if len(offices) != 1 {
		t.Fatalf("ScrapeOffices() returned %d offices, want 1: %#v", len(offices), offices)
	}
	office := offices[0]
	if office.CountryISO != "GB" {
		t.Errorf("CountryISO = %q, want GB", office.CountryISO)
	}
	if !strings.Contains(office.FormattedAddress, "SE1 2AU") {
		t.Errorf("FormattedAddress = %q", office.FormattedAddress)
	}
	if office.FormattedPhone == "" {
		t.Error("FormattedPhone empty")
	}
	if office.Email != "info@acme.example" {
		t.Errorf("Email = %q", office.Email)
	}
}

func TestScrapeOffices_FetchFailure(t *testing.T) {
	enricher := New(WithFetcher(stubPageFetcher{err: errors.New("bad gateway")}))

	if offices := enricher.ScrapeOffices(context.Background(), "https://dead.example"); offices != nil {
		t.Errorf("ScrapeOffices() = %#v, want nil on fetch failure", offices)
	}
}

func TestScrapeOffices_NoFetcher(t *testing.T) {
	if offices := New().ScrapeOffices(context.Background(), "https://acme.example"); offices != nil {
		t.Errorf("ScrapeOffices() = %#v, want nil without a fetcher", offices)
	}
}

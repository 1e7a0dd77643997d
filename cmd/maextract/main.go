// Command maextract runs the M&A evidence extraction for one firm and
// prints the result as JSON.
//
// Usage:
//
//	maextract -firm "Acme Capital" -domains acmecapital.com,acme.example
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leofalp/firmenrich/core/fetch"
	"github.com/leofalp/firmenrich/core/pipeline"
	"github.com/leofalp/firmenrich/core/synthesize"
	"github.com/leofalp/firmenrich/internal/config"
	"github.com/leofalp/firmenrich/internal/logging"
	"github.com/leofalp/firmenrich/providers/search"
)

func main() {
	firmName := flag.String("firm", "", "firm name to extract M&A status for (required)")
	domains := flag.String("domains", "", "comma-separated official domains of the firm")
	fallback := flag.String("fallback", "", "synthesis fallback mode: generic or skip (overrides env)")
	flag.Parse()

	if strings.TrimSpace(*firmName) == "" {
		fmt.Fprintln(os.Stderr, "maextract: -firm is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if *fallback != "" {
		cfg.SynthesisFallback = *fallback
	}
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	var officialDomains []string
	for _, domain := range strings.Split(*domains, ",") {
		if domain = strings.TrimSpace(domain); domain != "" {
			officialDomains = append(officialDomains, domain)
		}
	}

	pipe := pipeline.New(
		search.FromConfig(cfg, logger),
		fetch.New(fetch.WithTimeout(cfg.FetchTimeout)),
		pipeline.WithLimit(cfg.SearchLimit),
		pipeline.WithFallbackMode(synthesize.ParseFallbackMode(cfg.SynthesisFallback)),
		pipeline.WithLogger(logger),
	)

	result := pipe.Run(context.Background(), *firmName, officialDomains)

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "maextract: failed to encode result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))
}

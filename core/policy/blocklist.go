package policy

// blockedDomains lists data vendors whose pages are paywalled or whose terms
// of service forbid automated extraction. Matched as host substrings so
// regional mirrors (e.g. bloomberg.co.jp resolving through bloomberg.com
// hosts) are caught too.
//
// Keep this table sorted; it is the single source of truth for the blocklist
// and is matched before any official-domain check.
var blockedDomains = []string{
	"bloomberg.com",
	"capitaliq.com",
	"crunchbase.com",
	"pitchbook.com",
	"preqin.com",
}

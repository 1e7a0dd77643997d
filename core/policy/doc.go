// Package policy classifies candidate URLs before any network access.
//
// Every discovered URL receives exactly one [Classification]: Blocked hosts
// are never fetched, Official hosts belong to the firm itself, and everything
// else is treated as public news coverage. The blocklist takes precedence
// over official domains, so a paywalled data vendor cannot be whitelisted by
// accident.
package policy

package pipeline

import "fmt"

// queryTemplates are the fixed search phrasings tried for every firm. The
// firm name is quoted so multi-word names stay one search term.
var queryTemplates = []string{
	`"%s" acquired`,
	`"%s" acquisition`,
	`"%s" merger`,
	`"%s" was acquired by`,
	`"%s" merged with`,
}

// BuildQueries derives the search queries for firmName, one per template,
// in template order.
func BuildQueries(firmName string) []string {
	queries := make([]string, 0, len(queryTemplates))
	for _, template := range queryTemplates {
		queries = append(queries, fmt.Sprintf(template, firmName))
	}
	return queries
}

package phone

// dialTemplate holds display templates for one country. {area} and {local}
// are replaced with digit groups; the regional form is preferred when a city
// is known.
type dialTemplate struct {
	regional string
	national string
}

// dialTemplates holds curated per-country display templates, keyed by ISO-2
// code. Countries absent here go through the library formatter instead.
var dialTemplates = map[string]dialTemplate{
	"GB": {regional: "+44 {area} {local}", national: "+44 {area} {local}"},
	"IN": {regional: "+91 {area} {local}", national: "+91 {area} {local}"},
	"DE": {regional: "+49 {area} {local}", national: "+49 {area} {local}"},
	"US": {regional: "+1 ({area}) {local}", national: "+1 ({area}) {local}"},
	"CA": {regional: "+1 ({area}) {local}", national: "+1 ({area}) {local}"},
	"IE": {regional: "+353 {area} {local}", national: "+353 {area} {local}"},
	"FR": {regional: "+33 {area} {local}", national: "+33 {area} {local}"},
	"ES": {regional: "+34 {area} {local}", national: "+34 {area} {local}"},
	"IT": {regional: "+39 {area} {local}", national: "+39 {area} {local}"},
	"NL": {regional: "+31 {area} {local}", national: "+31 {area} {local}"},
	"SG": {regional: "+65 {area} {local}", national: "+65 {area} {local}"},
	"CH": {regional: "+41 {area} {local}", national: "+41 {area} {local}"},
	"AU": {regional: "+61 {area} {local}", national: "+61 {area} {local}"},
	"HK": {regional: "+852 {area} {local}", national: "+852 {area} {local}"},
}

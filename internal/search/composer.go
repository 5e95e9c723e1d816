package search

import (
	"net/url"
	"strconv"
	"strings"
)

// Query is one search submission: the free-text term plus the filter panel
// state at the time of submission.
type Query struct {
	Term           string
	Filters        FilterSet
	FiltersVisible bool
}

// Params lists the query parameters in wire order. Filters are included only
// when the panel is visible and the value differs from its unfiltered default.
func (q Query) Params() [][2]string {
	params := [][2]string{{"query", q.Term}}
	if !q.FiltersVisible {
		return params
	}

	f := q.Filters
	if f.batchMinActive() {
		params = append(params, [2]string{"batch_min", strconv.Itoa(f.BatchMin)})
	}
	if f.batchMaxActive() {
		params = append(params, [2]string{"batch_max", strconv.Itoa(f.BatchMax)})
	}
	if edu := f.education(); edu != "" {
		params = append(params, [2]string{"last_education", edu})
	}
	if r := f.recency(); r != "" {
		params = append(params, [2]string{"upload_range", r})
	}
	return params
}

// Encode renders Params as a query string in wire order (url.Values would
// sort the keys).
func (q Query) Encode() string {
	var b strings.Builder
	for i, kv := range q.Params() {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv[1]))
	}
	return b.String()
}

package canvas

import (
	"net/url"
	"strconv"
	"strings"
)

// ListOptions contains common pagination options for list endpoints.
type ListOptions struct {
	// Page is the 1-based page number; zero means the first page.
	Page int
	// PerPage is the page size; Canvas caps it at 100.
	PerPage int
}

func (o *ListOptions) query() url.Values {
	q := url.Values{}
	if o == nil {
		return q
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	return q
}

// PageResult carries the pagination links parsed from the Link response
// header of a list request.
type PageResult struct {
	// NextURL is the absolute URL of the next page, empty on the last page.
	NextURL string
	// LastURL is the absolute URL of the final page when Canvas reports it.
	LastURL string
}

// HasNext reports whether another page follows.
func (p *PageResult) HasNext() bool {
	return p != nil && p.NextURL != ""
}

// NextPage extracts the page number from NextURL. Returns 0 when there
// is no next page or the URL carries no page parameter.
func (p *PageResult) NextPage() int {
	if !p.HasNext() {
		return 0
	}
	u, err := url.Parse(p.NextURL)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil {
		return 0
	}
	return n
}

// parsePageResult parses an RFC 5988 Link header of the form
//
//	<https://host/api/v1/courses?page=2&per_page=10>; rel="next",
//	<https://host/api/v1/courses?page=5&per_page=10>; rel="last"
//
// Unrecognized rels are ignored; a missing or malformed header yields a
// result with no links.
func parsePageResult(header string) *PageResult {
	res := &PageResult{}
	for _, part := range strings.Split(header, ",") {
		var linkURL, rel string
		for _, seg := range strings.Split(part, ";") {
			seg = strings.TrimSpace(seg)
			switch {
			case strings.HasPrefix(seg, "<") && strings.HasSuffix(seg, ">"):
				linkURL = seg[1 : len(seg)-1]
			case strings.HasPrefix(seg, "rel="):
				rel = strings.Trim(strings.TrimPrefix(seg, "rel="), `"`)
			}
		}
		if linkURL == "" {
			continue
		}
		switch rel {
		case "next":
			res.NextURL = linkURL
		case "last":
			res.LastURL = linkURL
		}
	}
	return res
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package revalidate handles the CMS publish webhook.

When an editor publishes, updates or deletes content, the CMS posts
{api, id, type} here. The handler evicts every cached response the change can
affect, marks the search index stale and records the event.

	blogs   post lists, both post details, book pages, search
	book    book list and book pages, post lists (book filter)
	topics  topic list, every post and book page, search

The pre-render path listing is evicted for every event.
*/
package revalidate

import (
	"fmt"

	"github.com/taibuivan/techblog/internal/content/locale"
)

// CMS endpoint names carried in the payload's api field.
const (
	APIBlogs  = "blogs"
	APIBook   = "book"
	APITopics = "topics"
)

// Route prefixes of the cached API surface.
const (
	apiPrefix   = "/api/v1"
	pathsRoute  = apiPrefix + "/paths"
	topicsRoute = apiPrefix + "/topics"
)

// Payload is the webhook body sent by the CMS.
type Payload struct {
	API  string `json:"api"`
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Plan is the set of evictions one payload requires.
type Plan struct {
	Paths       []string
	StaleSearch bool
}

func localized(l locale.Locale, format string, args ...any) string {
	return apiPrefix + "/" + l.String() + fmt.Sprintf(format, args...)
}

/*
PlanFor returns the cache paths affected by payload.

Content ids are reduced to their canonical form, so a webhook for "abc-en"
evicts the pages of "abc" in both locales.
*/
func PlanFor(payload Payload) Plan {
	var plan Plan
	baseID := locale.Canonical(payload.ID)

	switch payload.API {
	case APIBlogs:
		plan.StaleSearch = true
		for _, l := range locale.All {
			plan.Paths = append(plan.Paths, localized(l, "/posts"))
			if baseID != "" {
				plan.Paths = append(plan.Paths, localized(l, "/posts/%s", baseID))
				if localizedID := locale.WithSuffix(baseID, l); localizedID != baseID {
					plan.Paths = append(plan.Paths, localized(l, "/posts/%s", localizedID))
				}
			}
			plan.Paths = append(plan.Paths, localized(l, "/books/*"), localized(l, "/search"))
		}

	case APIBook:
		for _, l := range locale.All {
			plan.Paths = append(plan.Paths, localized(l, "/books"))
			if baseID != "" {
				plan.Paths = append(plan.Paths, localized(l, "/books/%s/*", baseID))
			}
			plan.Paths = append(plan.Paths, localized(l, "/posts"))
		}

	case APITopics:
		plan.StaleSearch = true
		plan.Paths = append(plan.Paths, topicsRoute)
		for _, l := range locale.All {
			plan.Paths = append(plan.Paths, localized(l, "/posts/*"), localized(l, "/books/*"), localized(l, "/search"))
		}
	}

	plan.Paths = append(plan.Paths, pathsRoute)
	return plan
}

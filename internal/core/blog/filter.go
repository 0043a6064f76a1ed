// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/taibuivan/techblog/internal/core/topic"
	"github.com/taibuivan/techblog/pkg/slice"
)

// # Filter Engine
//
// Every function here is pure. Inputs are never mutated and results are
// freshly allocated slices in input order.

// Criteria is the set of active list filters. Empty fields are inactive.
type Criteria struct {
	TopicID string
	// Archive is a month in "YYYY-MM" form.
	Archive string
	BookID  string
}

// IsZero reports whether no filter is active.
func (c Criteria) IsZero() bool {
	return c.TopicID == "" && c.Archive == "" && c.BookID == ""
}

// Membership maps a localized post record id to the ids of the books it belongs to.
// It is computed once from the book list and handed to the filters.
type Membership map[string][]string

// Contains reports whether the record recordID is a member of bookID.
func (m Membership) Contains(recordID, bookID string) bool {
	return slices.Contains(m[recordID], bookID)
}

// FilterByTopic keeps posts tagged with topicID. An empty topicID keeps all.
func FilterByTopic(posts []*Post, topicID string) []*Post {
	return Apply(posts, Criteria{TopicID: topicID}, nil)
}

// FilterByArchiveMonth keeps posts published in month ("YYYY-MM", UTC).
// An empty month keeps all.
func FilterByArchiveMonth(posts []*Post, month string) []*Post {
	return Apply(posts, Criteria{Archive: month}, nil)
}

// FilterByCollection keeps posts that belong to bookID according to membership.
// An empty bookID keeps all.
func FilterByCollection(posts []*Post, bookID string, membership Membership) []*Post {
	return Apply(posts, Criteria{BookID: bookID}, membership)
}

// Apply keeps the posts that satisfy every active criterion.
func Apply(posts []*Post, criteria Criteria, membership Membership) []*Post {
	return slice.Filter(posts, func(post *Post) bool {
		if criteria.TopicID != "" && !post.HasTopic(criteria.TopicID) {
			return false
		}
		if criteria.Archive != "" && !strings.HasPrefix(post.Date(), criteria.Archive) {
			return false
		}
		if criteria.BookID != "" && !membership.Contains(post.LocalizedID(), criteria.BookID) {
			return false
		}
		return true
	})
}

// # Selection

// Selection is the post currently opened beside a filtered list.
type Selection struct {
	ID string `json:"id,omitempty"`
}

// Reconcile clears the selection when the selected post is no longer in filtered.
// The id may be either the canonical or the localized record id.
func (s Selection) Reconcile(filtered []*Post) Selection {
	if s.ID == "" {
		return s
	}

	for _, post := range filtered {
		if post.ID == s.ID || post.LocalizedID() == s.ID {
			return s
		}
	}
	return Selection{}
}

// # Facets

// TopicCount is the number of posts tagged with a topic.
type TopicCount struct {
	topic.Topic
	Count int `json:"count"`
}

// ArchiveCount is the number of posts published in a month.
type ArchiveCount struct {
	// Month is "YYYY-MM", the value accepted by the archive filter.
	Month string `json:"month"`
	// Label is the display form, e.g. "2026/1".
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Facets are the sidebar counters of the list view.
type Facets struct {
	Topics   []TopicCount   `json:"topics"`
	Archives []ArchiveCount `json:"archives"`
}

// CountFacets counts posts per topic (by label) and per archive month (newest first).
func CountFacets(posts []*Post) Facets {
	topicCounts := map[string]*TopicCount{}
	archiveCounts := map[string]*ArchiveCount{}

	for _, post := range posts {
		for _, t := range post.Topics {
			entry, ok := topicCounts[t.ID]
			if !ok {
				entry = &TopicCount{Topic: t}
				topicCounts[t.ID] = entry
			}
			entry.Count++
		}

		month := post.Month()
		entry, ok := archiveCounts[month]
		if !ok {
			entry = &ArchiveCount{Month: month, Label: archiveLabel(month)}
			archiveCounts[month] = entry
		}
		entry.Count++
	}

	facets := Facets{
		Topics:   make([]TopicCount, 0, len(topicCounts)),
		Archives: make([]ArchiveCount, 0, len(archiveCounts)),
	}
	for _, entry := range topicCounts {
		facets.Topics = append(facets.Topics, *entry)
	}
	for _, entry := range archiveCounts {
		facets.Archives = append(facets.Archives, *entry)
	}

	slices.SortFunc(facets.Topics, func(a, b TopicCount) int {
		return cmp.Or(cmp.Compare(a.Label, b.Label), cmp.Compare(a.ID, b.ID))
	})
	slices.SortFunc(facets.Archives, func(a, b ArchiveCount) int {
		return cmp.Compare(b.Month, a.Month)
	})
	return facets
}

// archiveLabel turns "2026-01" into "2026/1".
func archiveLabel(month string) string {
	year, mm, ok := strings.Cut(month, "-")
	if !ok {
		return month
	}
	n, err := strconv.Atoi(mm)
	if err != nil {
		return month
	}
	return year + "/" + strconv.Itoa(n)
}

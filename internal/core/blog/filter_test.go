// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/core/blog"
	"github.com/taibuivan/techblog/internal/core/topic"
)

// # Fixtures

var (
	topicGo   = topic.Topic{ID: "go", Label: "Go"}
	topicRust = topic.Topic{ID: "rust", Label: "Rust"}
)

func newPost(id string, published time.Time, topics ...topic.Topic) *blog.Post {
	return &blog.Post{
		ID:          locale.Canonical(id),
		Locale:      locale.Of(id),
		Japanese:    blog.Translation{Title: "JA " + id, Summary: "概要"},
		English:     blog.Translation{Title: "EN " + id, Summary: "summary"},
		PublishedAt: published,
		UpdatedAt:   published,
		ReadTime:    blog.DefaultReadTime,
		Topics:      topics,
	}
}

// tenPosts has three rust posts; two of them were published in January 2026 (UTC).
func tenPosts() []*blog.Post {
	posts := make([]*blog.Post, 0, 10)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		posts = append(posts, newPost(fmt.Sprintf("go-%d", i), base.AddDate(0, 0, i), topicGo))
	}

	posts = append(posts,
		newPost("rust-a", time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), topicRust),
		newPost("rust-b", time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC), topicRust, topicGo),
		newPost("rust-c", time.Date(2026, 2, 1, 0, 30, 0, 0, time.UTC), topicRust),
	)
	return posts
}

func ids(posts []*blog.Post) []string {
	out := make([]string, 0, len(posts))
	for _, post := range posts {
		out = append(out, post.LocalizedID())
	}
	return out
}

// # Tests

/*
TestApply_TopicAndArchive verifies that criteria are ANDed and order is kept.
*/
func TestApply_TopicAndArchive(t *testing.T) {
	posts := tenPosts()

	byTopic := blog.FilterByTopic(posts, "rust")
	assert.Equal(t, []string{"rust-a", "rust-b", "rust-c"}, ids(byTopic))

	both := blog.Apply(posts, blog.Criteria{TopicID: "rust", Archive: "2026-01"}, nil)
	assert.Equal(t, []string{"rust-a", "rust-b"}, ids(both))

	assert.Len(t, posts, 10, "input must not be mutated")
}

/*
TestFilterByArchiveMonth verifies the month is taken from the UTC publish date.
*/
func TestFilterByArchiveMonth(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	// 2026-02-01 08:00 JST is still January in UTC.
	posts := []*blog.Post{
		newPost("late", time.Date(2026, 2, 1, 8, 0, 0, 0, tokyo)),
		newPost("feb", time.Date(2026, 2, 1, 10, 0, 0, 0, tokyo)),
	}

	assert.Equal(t, []string{"late"}, ids(blog.FilterByArchiveMonth(posts, "2026-01")))
	assert.Equal(t, []string{"feb"}, ids(blog.FilterByArchiveMonth(posts, "2026-02")))
}

/*
TestApply_NoCriteria verifies that inactive criteria keep everything in a fresh slice.
*/
func TestApply_NoCriteria(t *testing.T) {
	posts := tenPosts()

	got := blog.Apply(posts, blog.Criteria{}, nil)
	require.Len(t, got, 10)

	got[0] = nil
	assert.NotNil(t, posts[0], "result must not alias the input")

	empty := blog.Apply(nil, blog.Criteria{TopicID: "go"}, nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

/*
TestFilterByCollection verifies the precomputed membership filter.
*/
func TestFilterByCollection(t *testing.T) {
	posts := []*blog.Post{
		newPost("p1", time.Now()),
		newPost("p2-en", time.Now()),
		newPost("p3", time.Now()),
	}
	membership := blog.Membership{
		"p1":    {"rust-book"},
		"p2-en": {"rust-book", "go-book"},
	}

	assert.Equal(t, []string{"p1", "p2-en"}, ids(blog.FilterByCollection(posts, "rust-book", membership)))
	assert.Equal(t, []string{"p2-en"}, ids(blog.FilterByCollection(posts, "go-book", membership)))
	assert.Empty(t, blog.FilterByCollection(posts, "go-book", nil))
	assert.Len(t, blog.FilterByCollection(posts, "", nil), 3)
}

/*
TestSelection_Reconcile verifies the selection resets when filtered out.
*/
func TestSelection_Reconcile(t *testing.T) {
	posts := tenPosts()
	filtered := blog.FilterByTopic(posts, "rust")

	assert.Equal(t, "rust-a", blog.Selection{ID: "rust-a"}.Reconcile(filtered).ID)
	assert.Empty(t, blog.Selection{ID: "go-1"}.Reconcile(filtered).ID)
	assert.Empty(t, blog.Selection{}.Reconcile(filtered).ID)

	english := []*blog.Post{newPost("intro-en", time.Now())}
	assert.Equal(t, "intro", blog.Selection{ID: "intro"}.Reconcile(english).ID)
	assert.Equal(t, "intro-en", blog.Selection{ID: "intro-en"}.Reconcile(english).ID)
}

/*
TestCountFacets verifies topic and archive counters and their ordering.
*/
func TestCountFacets(t *testing.T) {
	facets := blog.CountFacets(tenPosts())

	require.Len(t, facets.Topics, 2)
	assert.Equal(t, "Go", facets.Topics[0].Label)
	assert.Equal(t, 8, facets.Topics[0].Count)
	assert.Equal(t, "Rust", facets.Topics[1].Label)
	assert.Equal(t, 3, facets.Topics[1].Count)

	require.Len(t, facets.Archives, 3)
	assert.Equal(t, blog.ArchiveCount{Month: "2026-02", Label: "2026/2", Count: 1}, facets.Archives[0])
	assert.Equal(t, blog.ArchiveCount{Month: "2026-01", Label: "2026/1", Count: 2}, facets.Archives[1])
	assert.Equal(t, blog.ArchiveCount{Month: "2025-06", Label: "2025/6", Count: 7}, facets.Archives[2])
}

/*
TestPost_Text verifies meta text falls back to title and summary.
*/
func TestPost_Text(t *testing.T) {
	post := newPost("intro-en", time.Now())
	post.English.MetaTitle = "Custom"

	text := post.Text(locale.English)
	assert.Equal(t, "Custom", text.MetaTitle)
	assert.Equal(t, "summary", text.MetaDescription)

	view := post.View(false)
	assert.Equal(t, "intro", view.ID)
	assert.Equal(t, "intro-en", view.LocalizedID)
	assert.Equal(t, "EN intro-en", view.Title)
	assert.Empty(t, view.Body)
}

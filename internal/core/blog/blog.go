// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blog models the site's articles and the rules for listing them.

Every article exists as two CMS records: the Japanese original under its
canonical id and the English translation under "{id}-en". Both records carry
the text of both languages; the record id decides which locale it belongs to.

Components:

  - Post: The decoded article, keyed by canonical id plus locale.
  - Filter Engine: Pure topic, archive month and book filters (filter.go).
  - Service: In-memory listing, facet counting and pagination.
*/
package blog

import (
	"time"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/core/topic"
	"github.com/taibuivan/techblog/internal/platform/cms"
	"github.com/taibuivan/techblog/pkg/pointer"
	"github.com/taibuivan/techblog/pkg/slice"
)

// DefaultReadTime is used when a record does not declare a reading time.
const DefaultReadTime = 5

// # Domain Entities

// Translation is the per-language text of a post.
type Translation struct {
	Title           string `json:"title"`
	Summary         string `json:"summary"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

// Post is a single locale's record of an article.
type Post struct {
	// ID is the canonical (default-locale) id shared by both translations.
	ID     string
	Locale locale.Locale

	Japanese Translation
	English  Translation

	Body        string
	PublishedAt time.Time
	UpdatedAt   time.Time
	RevisedAt   *time.Time

	// ReadTime is the estimated reading time in minutes.
	ReadTime int
	Topics   []topic.Topic

	// BookID is set when the record declares the book it belongs to.
	BookID string
}

// LocalizedID returns the record id the post is stored under.
func (p *Post) LocalizedID() string {
	return locale.WithSuffix(p.ID, p.Locale)
}

// Text returns the translation for l. Empty meta fields fall back to the
// title and summary.
func (p *Post) Text(l locale.Locale) Translation {
	text := p.Japanese
	if l == locale.English {
		text = p.English
	}

	if text.MetaTitle == "" {
		text.MetaTitle = text.Title
	}
	if text.MetaDescription == "" {
		text.MetaDescription = text.Summary
	}
	return text
}

// HasTopic reports whether the post is tagged with topicID.
func (p *Post) HasTopic(topicID string) bool {
	for _, t := range p.Topics {
		if t.ID == topicID {
			return true
		}
	}
	return false
}

// Date returns the UTC publish date as "YYYY-MM-DD".
func (p *Post) Date() string {
	return p.PublishedAt.UTC().Format(time.DateOnly)
}

// Month returns the UTC publish month as "YYYY-MM".
func (p *Post) Month() string {
	return p.Date()[:7]
}

// # API Views

// PostView is the JSON shape of a post in its own locale.
type PostView struct {
	ID              string        `json:"id"`
	LocalizedID     string        `json:"localized_id"`
	Locale          locale.Locale `json:"locale"`
	Title           string        `json:"title"`
	Summary         string        `json:"summary"`
	MetaTitle       string        `json:"meta_title"`
	MetaDescription string        `json:"meta_description"`
	Date            string        `json:"date"`
	PublishedAt     time.Time     `json:"published_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	ReadTime        int           `json:"read_time"`
	Topics          []topic.Topic `json:"topics"`
	BookID          string        `json:"book_id,omitempty"`
	Body            string        `json:"body,omitempty"`
}

// View renders p in its own locale. The body is only included when withBody is set.
func (p *Post) View(withBody bool) PostView {
	text := p.Text(p.Locale)

	view := PostView{
		ID:              p.ID,
		LocalizedID:     p.LocalizedID(),
		Locale:          p.Locale,
		Title:           text.Title,
		Summary:         text.Summary,
		MetaTitle:       text.MetaTitle,
		MetaDescription: text.MetaDescription,
		Date:            p.Date(),
		PublishedAt:     p.PublishedAt,
		UpdatedAt:       p.UpdatedAt,
		ReadTime:        p.ReadTime,
		Topics:          p.Topics,
		BookID:          p.BookID,
	}
	if withBody {
		view.Body = p.Body
	}
	return view
}

// Views renders a list of posts without bodies.
func Views(posts []*Post) []PostView {
	return slice.Map(posts, func(p *Post) PostView { return p.View(false) })
}

// # CMS Record

// Record is the stored shape of a post. Field names follow the CMS schema,
// including the "sammary_en" spelling.
type Record struct {
	ID          *string    `json:"id"`
	PublishedAt *time.Time `json:"publishedAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
	RevisedAt   *time.Time `json:"revisedAt"`

	Title     *string `json:"title"`
	TitleEn   *string `json:"title_en"`
	Summary   *string `json:"summary"`
	SummaryEn *string `json:"sammary_en"`

	MetaTitle   *string `json:"meta_title"`
	MetaTitleEn *string `json:"meta_title_en"`
	MetaDesc    *string `json:"meta_desc"`
	MetaDescEn  *string `json:"meta_desc_en"`

	ReadTime     *int    `json:"read_time"`
	MainContents *string `json:"main_contents"`

	Topics *[]topic.Record `json:"topics"`
	Book   *BookRef        `json:"book"`
}

// BookRef is the optional book a post record points at.
type BookRef struct {
	ID *string `json:"id"`
}

// Check implements [cms.Record].
func (r Record) Check(schema *cms.Schema) {
	schema.Required("id", r.ID != nil)
	schema.Required("publishedAt", r.PublishedAt != nil)
	schema.Required("updatedAt", r.UpdatedAt != nil)
	schema.Required("title", r.Title != nil)
	schema.Required("title_en", r.TitleEn != nil)
	schema.Required("summary", r.Summary != nil)
	schema.Required("sammary_en", r.SummaryEn != nil)
	schema.Required("topics", r.Topics != nil)

	if r.Topics != nil {
		topics := schema.At("topics")
		for i, t := range *r.Topics {
			t.Check(topics.Index(i))
		}
	}

	if r.Book != nil {
		schema.At("book").Required("id", r.Book.ID != nil)
	}
}

// ToPost converts a checked record.
func (r Record) ToPost() *Post {
	recordID := *r.ID

	post := &Post{
		ID:     locale.Canonical(recordID),
		Locale: locale.Of(recordID),
		Japanese: Translation{
			Title:           *r.Title,
			Summary:         *r.Summary,
			MetaTitle:       pointer.Val(r.MetaTitle),
			MetaDescription: pointer.Val(r.MetaDesc),
		},
		English: Translation{
			Title:           *r.TitleEn,
			Summary:         *r.SummaryEn,
			MetaTitle:       pointer.Val(r.MetaTitleEn),
			MetaDescription: pointer.Val(r.MetaDescEn),
		},
		Body:        pointer.Val(r.MainContents),
		PublishedAt: *r.PublishedAt,
		UpdatedAt:   *r.UpdatedAt,
		RevisedAt:   r.RevisedAt,
		ReadTime:    pointer.Fallback(r.ReadTime, DefaultReadTime),
		Topics:      slice.Map(*r.Topics, topic.Record.ToTopic),
	}

	if r.Book != nil {
		post.BookID = *r.Book.ID
	}
	return post
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book models multi-chapter collections of posts.

A book stores an ordered list of member post records. Members of both locales
live in the same list; the chapters of a locale are the members whose record
id belongs to that locale, numbered by their position in the list.

Components:

  - Resolver: Concurrent member fetch with positional reassembly (resolver.go).
  - Chapters: Chapter index and prev/next lookups on a resolved book.
  - Service: Book listing, article navigation and pre-render path enumeration.
*/
package book

import (
	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/platform/cms"
	"github.com/taibuivan/techblog/pkg/pointer"
)

// # Domain Entities

// Image is a CMS-hosted picture.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Member references one post record of a book.
type Member struct {
	// RecordID is the stored, possibly suffixed, post record id.
	RecordID string
}

// Locale returns the locale of the referenced record.
func (m Member) Locale() locale.Locale {
	return locale.Of(m.RecordID)
}

// PostID returns the canonical id of the referenced post.
func (m Member) PostID() string {
	return locale.Canonical(m.RecordID)
}

// Book is an ordered collection of posts.
type Book struct {
	ID      string
	Title   string
	Cover   *Image
	Members []Member
}

// MembersIn returns the members of locale l in list order.
func (b *Book) MembersIn(l locale.Locale) []Member {
	members := make([]Member, 0, len(b.Members))
	for _, m := range b.Members {
		if m.Locale() == l {
			members = append(members, m)
		}
	}
	return members
}

// # CMS Record

// Record is the stored shape of a book.
type Record struct {
	ID        *string        `json:"id"`
	BookTitle *string        `json:"book_title"`
	BookBlogs []MemberRecord `json:"book_blogs"`
	BookCover *ImageRecord   `json:"book_cover"`
}

// MemberRecord is an embedded post reference; only its id is used.
type MemberRecord struct {
	ID *string `json:"id"`
}

// ImageRecord is the stored shape of an image field.
type ImageRecord struct {
	URL    *string `json:"url"`
	Width  *int    `json:"width"`
	Height *int    `json:"height"`
}

// Check implements [cms.Record].
func (r Record) Check(schema *cms.Schema) {
	schema.Required("id", r.ID != nil)
	schema.Required("book_title", r.BookTitle != nil)

	members := schema.At("book_blogs")
	for i, m := range r.BookBlogs {
		members.Index(i).Required("id", m.ID != nil)
	}

	if r.BookCover != nil {
		schema.At("book_cover").Required("url", r.BookCover.URL != nil)
	}
}

// ToBook converts a checked record. A missing member list is an empty book.
func (r Record) ToBook() *Book {
	book := &Book{
		ID:      *r.ID,
		Title:   *r.BookTitle,
		Members: make([]Member, 0, len(r.BookBlogs)),
	}

	for _, m := range r.BookBlogs {
		book.Members = append(book.Members, Member{RecordID: *m.ID})
	}

	if r.BookCover != nil {
		book.Cover = &Image{
			URL:    *r.BookCover.URL,
			Width:  pointer.Val(r.BookCover.Width),
			Height: pointer.Val(r.BookCover.Height),
		}
	}
	return book
}

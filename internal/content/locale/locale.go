// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package locale encodes the site's two content locales into CMS record ids.

Every article is stored under two records: the Japanese original under its
canonical id, and the English translation under the same id with an "-en"
suffix. The codec is the only place that knows this convention.

Usage:

	id := locale.WithSuffix("intro", locale.English) // "intro-en"
	l := locale.Of("intro-en")                         // locale.English
	canonical := locale.Canonical("intro-en")          // "intro"

Ambiguity:

  - A Japanese record whose id legitimately ends with "-en" is read as English.
    Authors avoid such ids; the codec does not try to disambiguate.
*/
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a closed set of supported content locales.
type Locale string

const (
	// Japanese is the default locale; its ids carry no suffix.
	Japanese Locale = "ja"

	// English records are stored as "{id}-en".
	English Locale = "en"

	// Default is the locale served when nothing else is requested.
	Default = Japanese

	// Suffix marks a record id as belonging to the English locale.
	Suffix = "-en"
)

// All lists every supported locale, default first.
var All = []Locale{Japanese, English}

// String implements [fmt.Stringer].
func (l Locale) String() string { return string(l) }

// IsDefault reports whether l is the default locale.
func (l Locale) IsDefault() bool { return l == Default }

// # Id Codec

/*
WithSuffix returns the record id of id in locale l.

Any existing locale suffix is stripped first, so the function is idempotent
and WithSuffix(WithSuffix(id, English), Japanese) yields the canonical id.

Parameters:
  - id: string (canonical or already suffixed record id)
  - l: Locale (target locale)

Returns:
  - string: The record id for l
*/
func WithSuffix(id string, l Locale) string {
	base := id
	for strings.HasSuffix(base, Suffix) {
		base = strings.TrimSuffix(base, Suffix)
	}

	if l == English {
		return base + Suffix
	}
	return base
}

// Of returns the locale a record id belongs to.
func Of(id string) Locale {
	if strings.HasSuffix(id, Suffix) {
		return English
	}
	return Japanese
}

// Canonical returns the default-locale id that every translation shares.
func Canonical(id string) string {
	return WithSuffix(id, Default)
}

// # Parsing & Negotiation

// Parse maps a route segment such as "ja" or "en" to a [Locale].
func Parse(value string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(value))) {
	case Japanese:
		return Japanese, true
	case English:
		return English, true
	}
	return "", false
}

var (
	supportedTags = []language.Tag{language.Japanese, language.English}
	matcher       = language.NewMatcher(supportedTags)
)

/*
Negotiate picks the best supported locale for an Accept-Language header.

Returns [Default] when the header is empty, malformed, or names no language
that matches a supported locale.
*/
func Negotiate(acceptLanguage string) Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}

	if supportedTags[index] == language.English {
		return English
	}
	return Japanese
}

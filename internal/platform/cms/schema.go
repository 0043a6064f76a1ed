// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cms

import "strconv"

// Record is implemented by every content type the fetcher decodes.
//
// Check reports every required field that is absent. Decoding already rejects
// fields of the wrong JSON type, so Check only has to look for nil pointers.
type Record interface {
	Check(schema *Schema)
}

// Schema collects violations while a record is checked.
// Children created through At and Index share the parent's violation list.
type Schema struct {
	path       string
	violations *[]string
}

// NewSchema returns a root schema whose paths start at root ("" for a bare record).
func NewSchema(root string) *Schema {
	return &Schema{path: root, violations: new([]string)}
}

// At descends into a named field.
func (s *Schema) At(field string) *Schema {
	return &Schema{path: s.join(field), violations: s.violations}
}

// Index descends into an array element.
func (s *Schema) Index(i int) *Schema {
	return &Schema{path: s.path + "[" + strconv.Itoa(i) + "]", violations: s.violations}
}

// Required records a violation for field unless present is true.
func (s *Schema) Required(field string, present bool) {
	if !present {
		*s.violations = append(*s.violations, s.join(field))
	}
}

// Violations returns the offending field paths in the order they were found.
func (s *Schema) Violations() []string {
	return *s.violations
}

// Path returns the schema's position inside the response.
func (s *Schema) Path() string {
	return s.path
}

func (s *Schema) join(field string) string {
	if s.path == "" {
		return field
	}
	if field == "" {
		return s.path
	}
	return s.path + "." + field
}

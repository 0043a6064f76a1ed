// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package topic

import "github.com/taibuivan/techblog/internal/platform/cms"

// Topic is a label posts are grouped under in the sidebar and list filters.
type Topic struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// # CMS Record

// Record is the stored shape of a topic. Posts embed the same shape.
type Record struct {
	ID    *string `json:"id"`
	Topic *string `json:"topic"`
}

// Check implements [cms.Record].
func (r Record) Check(schema *cms.Schema) {
	schema.Required("id", r.ID != nil)
	schema.Required("topic", r.Topic != nil)
}

// ToTopic converts a checked record.
func (r Record) ToTopic() Topic {
	return Topic{ID: *r.ID, Label: *r.Topic}
}

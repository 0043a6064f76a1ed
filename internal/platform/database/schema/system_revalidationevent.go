package schema

import "github.com/taibuivan/techblog/internal/platform/constants"

// SystemRevalidationEventTable represents the 'system.revalidationevent' table
type SystemRevalidationEventTable struct {
	Table        string
	ID           string
	API          string
	ContentID    string
	EventType    string
	PathCount    string
	EvictedCount string
	ReceivedAt   string
}

// SystemRevalidationEvent is the schema definition for system.revalidationevent
var SystemRevalidationEvent = SystemRevalidationEventTable{
	Table:        constants.SchemaSystem + ".revalidationevent",
	ID:           "id",
	API:          "api",
	ContentID:    "contentid",
	EventType:    "eventtype",
	PathCount:    "pathcount",
	EvictedCount: "evictedcount",
	ReceivedAt:   "receivedat",
}

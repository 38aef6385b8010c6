package notify

import (
	"strconv"
	"time"
)

// Event kinds surfaced by the change-feed.
const (
	EventInsert = "insert"
	EventUpdate = "update"
)

// Event is one raw change-feed record: a row snapshot as an untyped field
// map, the shape redis hands back from a stream entry.
type Event struct {
	Kind   string
	Values map[string]interface{}
}

// CriticalCase is the normalized in-memory notification delivered to
// subscribers. It is never persisted by this package.
type CriticalCase struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Priority  string    `json:"priority"`
	Location  string    `json:"location"`
	AIScore   *float64  `json:"ai_score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Normalize converts an untrusted change-feed record into a CriticalCase.
// Fields are read by name and tolerant of absence; a missing AI score stays
// nil rather than becoming a zero that could pass for a real score.
func Normalize(evt Event) CriticalCase {
	var cc CriticalCase

	if id, ok := evt.Values["id"].(string); ok {
		cc.ID = id
	}
	if title, ok := evt.Values["title"].(string); ok {
		cc.Title = title
	}
	if category, ok := evt.Values["category"].(string); ok {
		cc.Category = category
	}
	if priority, ok := evt.Values["priority"].(string); ok {
		cc.Priority = priority
	}
	if location, ok := evt.Values["location"].(string); ok {
		cc.Location = location
	}
	if scoreStr, ok := evt.Values["ai_score"].(string); ok {
		if score, err := strconv.ParseFloat(scoreStr, 64); err == nil {
			cc.AIScore = &score
		}
	}
	if tsStr, ok := evt.Values["created_at"].(string); ok {
		if ts, err := strconv.ParseInt(tsStr, 10, 64); err == nil {
			cc.CreatedAt = time.Unix(ts, 0).UTC()
		}
	}
	return cc
}

package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWithoutScore(t *testing.T) {
	cc := Normalize(Event{Kind: EventInsert, Values: map[string]interface{}{
		"id":       "abc",
		"title":    "Pot-de-vin",
		"category": "corruption",
		"priority": "critique",
		"location": "Libreville",
	}})

	assert.Equal(t, "abc", cc.ID)
	assert.Equal(t, "Pot-de-vin", cc.Title)
	assert.Equal(t, "corruption", cc.Category)
	assert.Equal(t, "critique", cc.Priority)
	assert.Equal(t, "Libreville", cc.Location)
	assert.Nil(t, cc.AIScore, "absent score must stay nil, not become zero")
}

func TestNormalizeWithScore(t *testing.T) {
	cc := Normalize(Event{Kind: EventUpdate, Values: map[string]interface{}{
		"id":         "def",
		"ai_score":   "0.92",
		"created_at": "1717200000",
	}})

	if assert.NotNil(t, cc.AIScore) {
		assert.InDelta(t, 0.92, *cc.AIScore, 1e-9)
	}
	assert.Equal(t, time.Unix(1717200000, 0).UTC(), cc.CreatedAt)
}

func TestNormalizeGarbage(t *testing.T) {
	cc := Normalize(Event{Values: map[string]interface{}{
		"id":         42,
		"ai_score":   "pas-un-nombre",
		"created_at": "hier",
	}})

	assert.Empty(t, cc.ID)
	assert.Nil(t, cc.AIScore)
	assert.True(t, cc.CreatedAt.IsZero())
}

func TestNormalizeEmpty(t *testing.T) {
	cc := Normalize(Event{})
	assert.Empty(t, cc.ID)
	assert.Nil(t, cc.AIScore)
}

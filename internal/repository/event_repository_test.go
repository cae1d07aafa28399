package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildEventFilter(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.Equal(t, bson.M{}, BuildEventFilter(EventFilter{}))
	})

	t.Run("category only", func(t *testing.T) {
		assert.Equal(t, bson.M{"category": "Music"}, BuildEventFilter(EventFilter{Category: "Music"}))
	})

	t.Run("search matches title and descriptions case-insensitively", func(t *testing.T) {
		filter := BuildEventFilter(EventFilter{Search: "Jazz"})

		or, ok := filter["$or"].(bson.A)
		require.True(t, ok)
		require.Len(t, or, 3)

		want := primitive.Regex{Pattern: "Jazz", Options: "i"}
		assert.Equal(t, bson.M{"title": want}, or[0])
		assert.Equal(t, bson.M{"shortDescription": want}, or[1])
		assert.Equal(t, bson.M{"fullDescription": want}, or[2])
		assert.NotContains(t, filter, "category")
	})

	t.Run("search text is escaped", func(t *testing.T) {
		filter := BuildEventFilter(EventFilter{Search: "C++ (intro)"})

		or := filter["$or"].(bson.A)
		assert.Equal(t, bson.M{"title": primitive.Regex{Pattern: `C\+\+ \(intro\)`, Options: "i"}}, or[0])
	})

	t.Run("search and category combine", func(t *testing.T) {
		filter := BuildEventFilter(EventFilter{Search: "rock", Category: "Music"})

		assert.Contains(t, filter, "$or")
		assert.Equal(t, "Music", filter["category"])
	})
}

package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisCache_KeyPrefix(t *testing.T) {
	assert.Equal(t, "eventhub:event:42", (&redisCache{prefix: "eventhub"}).key("event:42"))
	assert.Equal(t, "event:42", (&redisCache{}).key("event:42"))
}

func TestRedisCache_DeleteWithoutKeysIsNoop(t *testing.T) {
	c := &redisCache{}
	assert.NoError(t, c.Delete(context.Background()))
}

func TestNewRedisCache_UnreachableServer(t *testing.T) {
	_, err := NewRedisCache("redis://127.0.0.1:1/0", "eventhub")
	assert.Error(t, err)
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGet(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", "two")

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, c.Size())

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.SetWithTTL("short", "gone soon", 10*time.Millisecond)

	_, ok := c.Get("short")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Get("short")
	assert.False(t, ok)
}

func TestCache_GetOrSet(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	calls := 0
	fill := func(context.Context) (interface{}, error) {
		calls++
		return "filled", nil
	}

	v, err := c.GetOrSet(context.Background(), "k", fill)
	assert.NoError(t, err)
	assert.Equal(t, "filled", v)

	v, err = c.GetOrSet(context.Background(), "k", fill)
	assert.NoError(t, err)
	assert.Equal(t, "filled", v)
	assert.Equal(t, 1, calls)

	_, err = c.GetOrSet(context.Background(), "bad", func(context.Context) (interface{}, error) {
		return nil, errors.New("fill failed")
	})
	assert.Error(t, err)
	_, ok := c.Get("bad")
	assert.False(t, ok)
}

func TestCache_InvalidatePrefix(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("twitch:shroud", 1)
	c.Set("twitch:xqc", 2)
	c.Set("youtube:abc", 3)

	c.InvalidatePrefix("twitch:")

	assert.Equal(t, 1, c.Size())
	_, ok := c.Get("youtube:abc")
	assert.True(t, ok)
}

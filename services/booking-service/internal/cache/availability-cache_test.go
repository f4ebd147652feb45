package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityCache_RoundTrip(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewAvailabilityCache(db, 2*time.Minute)
	ctx := context.Background()

	availability := map[string][]string{
		"2026-03-02": {"9:00 AM-11:00 AM", "11:00 AM-1:00 PM"},
	}
	encoded, err := json.Marshal(availability)
	require.NoError(t, err)

	mock.ExpectSet("availability:ground:g1", encoded, 2*time.Minute).SetVal("OK")
	mock.ExpectGet("availability:ground:g1").SetVal(string(encoded))

	require.Nil(t, c.Set(ctx, "g1", availability))

	got, appErr := c.Get(ctx, "g1")
	require.Nil(t, appErr)
	assert.Equal(t, availability, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityCache_MissReturnsNil(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewAvailabilityCache(db, time.Minute)

	mock.ExpectGet("availability:ground:missing").RedisNil()

	got, appErr := c.Get(context.Background(), "missing")
	require.Nil(t, appErr)
	assert.Nil(t, got)
}

func TestAvailabilityCache_Invalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewAvailabilityCache(db, time.Minute)

	mock.ExpectDel("availability:ground:g1").SetVal(1)

	require.Nil(t, c.Invalidate(context.Background(), "g1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

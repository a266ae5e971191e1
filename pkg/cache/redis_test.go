package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNop_AlwaysMisses(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", []int{1}, time.Minute))
	var out []int
	assert.ErrorIs(t, c.GetJSON(ctx, "k", &out), ErrMiss)
}

func TestRedisClient_RoundTrip(t *testing.T) {
	addr := os.Getenv("AGRILINK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("AGRILINK_TEST_REDIS_ADDR is required for tests")
	}

	ctx := context.Background()
	c, err := NewRedisClient(ctx, addr, "", 0, "test-"+uuid.NewString())
	require.NoError(t, err)
	defer c.Close()

	var miss map[string]string
	assert.ErrorIs(t, c.GetJSON(ctx, "regions", &miss), ErrMiss)

	in := map[string]string{"DK": "Dakar"}
	require.NoError(t, c.SetJSON(ctx, "regions", in, time.Minute))

	var out map[string]string
	require.NoError(t, c.GetJSON(ctx, "regions", &out))
	assert.Equal(t, in, out)

	require.NoError(t, c.Del(ctx, "regions"))
	assert.ErrorIs(t, c.GetJSON(ctx, "regions", &out), ErrMiss)
}

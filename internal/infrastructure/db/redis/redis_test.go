package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, Pinger(client)(context.Background()))

	mr.Close()
	assert.Error(t, Pinger(client)(context.Background()))
}

func TestConnect_URL(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{URL: "redis://" + mr.Addr() + "/2", Addr: "ignored:1"})
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, 2, client.Options().DB)
}

func TestConnect_Errors(t *testing.T) {
	_, err := Connect(context.Background(), Config{URL: "://bad"})
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = Connect(context.Background(), Config{Addr: addr})
	assert.Error(t, err)
}

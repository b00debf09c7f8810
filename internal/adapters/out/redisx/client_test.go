package redisx_test

import (
	"testing"
	"time"

	"shop/internal/adapters/out/redisx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ConfiguresAddressAndTimeouts(t *testing.T) {
	client := redisx.New("localhost:6379")
	require.NotNil(t, client)

	opts := client.Options()
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2*time.Second, opts.ReadTimeout)
	assert.Equal(t, 2*time.Second, opts.WriteTimeout)
}

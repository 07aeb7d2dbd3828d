package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Transports(t *testing.T) {
	ctx := context.Background()

	p, err := New(ctx, TransportREST, "k", "http://127.0.0.1:1")
	require.NoError(t, err)
	rp, ok := p.(*RESTProvider)
	require.True(t, ok)
	assert.Equal(t, "http://127.0.0.1:1", rp.baseURL)
	p.Close()

	p, err = New(ctx, TransportSDK, "k", "")
	require.NoError(t, err)
	_, ok = p.(*GeminiProvider)
	assert.True(t, ok)
	p.Close()

	p, err = New(ctx, "", "k", "")
	require.NoError(t, err)
	rp, ok = p.(*RESTProvider)
	require.True(t, ok, "empty transport defaults to REST")
	assert.Equal(t, DefaultBaseURL, rp.baseURL)
	p.Close()

	_, err = New(ctx, "grpc", "k", "")
	assert.Error(t, err)

	p, err = New(ctx, TransportREST, "", "")
	assert.Error(t, err)
	assert.Nil(t, p)
}

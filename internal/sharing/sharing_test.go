package sharing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableRef(t *testing.T) {
	ref, err := ParseTableRef("sales.public.orders")
	require.NoError(t, err)
	assert.Equal(t, TableRef{Share: "sales", Schema: "public", Name: "orders"}, ref)
	assert.Equal(t, "sales.public.orders", ref.String())

	for _, bad := range []string{"", "a.b", "a.b.c.d", "a..c"} {
		_, err := ParseTableRef(bad)
		assert.ErrorIs(t, err, ErrInvalidTableRef, "input %q", bad)
	}
}

func TestIsProfile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "profile",
			content: `{"shareCredentialsVersion": 1, "endpoint": "https://example.com/delta-sharing/", "bearerToken": "t"}`,
			want:    true,
		},
		{name: "missing token", content: `{"shareCredentialsVersion": 1, "endpoint": "https://example.com"}`},
		{name: "data", content: `[{"a": 1}]`},
		{name: "garbage", content: `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsProfile([]byte(tt.content)))
		})
	}
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), 0)
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(DefaultTimeout), deadline, 5*time.Second)

	ctx, cancel = WithTimeout(context.Background(), time.Second)
	defer cancel()
	deadline, ok = ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
}

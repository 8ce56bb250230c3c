package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAvatarObjectPath(t *testing.T) {
	p := AvatarObjectPath("u1", "Me.PNG")
	require.True(t, strings.HasPrefix(p, "avatars/u1/"))
	require.True(t, strings.HasSuffix(p, ".png"))
	require.NotEqual(t, p, AvatarObjectPath("u1", "Me.PNG"))
}

func TestDeleteIgnoresForeignURL(t *testing.T) {
	s := NewAvatarStorage(nil, "bucket")
	require.NoError(t, s.Delete(context.Background(), "https://example.com/a.png"))
}

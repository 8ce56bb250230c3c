package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/go-mentorship-tracker/pkg/helpers"
)

// AvatarStorage stores profile pictures in a GCS bucket under avatars/<userID>/.
type AvatarStorage struct {
	Client *storage.Client
	Bucket string
}

func NewAvatarStorage(client *storage.Client, bucket string) *AvatarStorage {
	return &AvatarStorage{Client: client, Bucket: bucket}
}

const avatarCacheControl = "public, max-age=86400"

// Upload writes r to a fresh object and returns its public URL. Object names
// are never reused, so the object can be cached aggressively.
func (s *AvatarStorage) Upload(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.Client, s.Bucket, AvatarObjectPath(userID, filename), helpers.ObjectOptions{
		ContentType:  contentType,
		CacheControl: avatarCacheControl,
		Metadata:     map[string]string{"user_id": userID},
	}, r)
}

// Delete removes the object behind url when it lives in this bucket.
func (s *AvatarStorage) Delete(ctx context.Context, url string) error {
	prefix := helpers.PublicURL(s.Bucket, "")
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	return helpers.DeleteObject(ctx, s.Client, s.Bucket, strings.TrimPrefix(url, prefix))
}

// AvatarObjectPath names a new avatar object, keeping the file extension.
func AvatarObjectPath(userID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join("avatars", userID, uuid.NewString()+ext)
}

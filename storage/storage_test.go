package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBlob struct {
	objects map[string][]byte
	types   map[string]string
}

func (m *memBlob) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[key] = raw
	m.types[key] = contentType
	return publicURL("https://cdn.example.com", "thumbs", key), nil
}

func (m *memBlob) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func TestCopyFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pb/thumbnail.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	blob := &memBlob{objects: map[string][]byte{}, types: map[string]string{}}

	url, err := CopyFromURL(context.Background(), blob, srv.URL+"/pb/thumbnail.jpg", "videos/1/thumb.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/thumbs/videos/1/thumb.jpg", url)
	assert.Equal(t, []byte("jpeg-bytes"), blob.objects["videos/1/thumb.jpg"])
	assert.Equal(t, "image/jpeg", blob.types["videos/1/thumb.jpg"])

	_, err = CopyFromURL(context.Background(), blob, srv.URL+"/missing", "k")
	assert.Error(t, err)
	assert.NotContains(t, blob.objects, "k")
}

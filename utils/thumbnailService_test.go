package utils

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courseforge/models"
)

type fakeUploader struct {
	key         string
	body        []byte
	contentType string
	url         string
	err         error
}

func (f *fakeUploader) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.key = key
	f.contentType = contentType
	f.body, _ = io.ReadAll(reader)
	return f.url, nil
}

func staticProvider(name, url string, err error) (imageProvider, *int) {
	calls := new(int)
	return imageProvider{
		name: name,
		lookup: func(ctx context.Context, title string) (string, error) {
			*calls++
			return url, err
		},
	}, calls
}

func TestResolveURLFallsBackOnError(t *testing.T) {
	broken, brokenCalls := staticProvider("broken", "", errors.New("quota exceeded"))
	working, workingCalls := staticProvider("working", "https://img.example.com/a.jpg", nil)

	r := &ThumbnailResolver{chain: []imageProvider{broken, working}}

	url := r.resolveURL(context.Background(), "Learning Go")
	assert.Equal(t, "https://img.example.com/a.jpg", url)
	assert.Equal(t, 1, *brokenCalls)
	assert.Equal(t, 1, *workingCalls)
}

func TestResolveURLFallsBackOnEmptyResult(t *testing.T) {
	empty, _ := staticProvider("empty", "", nil)
	working, _ := staticProvider("working", "https://img.example.com/a.jpg", nil)

	r := &ThumbnailResolver{chain: []imageProvider{empty, working}}

	assert.Equal(t, "https://img.example.com/a.jpg", r.resolveURL(context.Background(), "Learning Go"))
}

func TestResolveURLStopsAtFirstCandidate(t *testing.T) {
	first, firstCalls := staticProvider("first", "https://img.example.com/a.jpg", nil)
	second, secondCalls := staticProvider("second", "https://img.example.com/b.jpg", nil)

	r := &ThumbnailResolver{chain: []imageProvider{first, second}}

	assert.Equal(t, "https://img.example.com/a.jpg", r.resolveURL(context.Background(), "Learning Go"))
	assert.Equal(t, 1, *firstCalls)
	assert.Equal(t, 0, *secondCalls)
}

func TestResolveURLAllProvidersExhausted(t *testing.T) {
	broken, _ := staticProvider("broken", "", errors.New("down"))
	empty, _ := staticProvider("empty", "", nil)

	r := &ThumbnailResolver{chain: []imageProvider{broken, empty}}

	assert.Equal(t, "", r.resolveURL(context.Background(), "Learning Go"))
}

func TestResolveAndStoreWithoutProviders(t *testing.T) {
	r := &ThumbnailResolver{blob: &fakeUploader{}}
	err := r.ResolveAndStore(context.Background(), 1, "Learning Go")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	provider, _ := staticProvider("p", "https://img.example.com/a.jpg", nil)
	r = &ThumbnailResolver{chain: []imageProvider{provider}}
	err = r.ResolveAndStore(context.Background(), 1, "Learning Go")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestResolveAndStoreUploadsAndPersists(t *testing.T) {
	db := setupTestDb(t)

	course := models.Course{Title: "Learning Go", OwnerID: "user-1", Revision: 1}
	require.NoError(t, db.Create(&course).Error)

	image := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer image.Close()

	provider, _ := staticProvider("p", image.URL+"/a.jpg", nil)
	uploader := &fakeUploader{url: "https://blob.example.com/bucket/key.jpg"}
	r := &ThumbnailResolver{
		chain: []imageProvider{provider},
		fetch: resty.New().SetTimeout(5 * time.Second),
		blob:  uploader,
	}

	require.NoError(t, r.ResolveAndStore(context.Background(), course.ID, course.Title))

	assert.Equal(t, []byte("jpeg-bytes"), uploader.body)
	assert.Equal(t, "image/jpeg", uploader.contentType)
	assert.Contains(t, uploader.key, "learning-go")

	var stored models.Course
	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, "https://blob.example.com/bucket/key.jpg", stored.ThumbnailURL)
}

func TestResolveAndStoreFetchFailureDoesNotRetryChain(t *testing.T) {
	image := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer image.Close()

	first, _ := staticProvider("first", image.URL+"/gone.jpg", nil)
	second, secondCalls := staticProvider("second", "https://img.example.com/b.jpg", nil)

	r := &ThumbnailResolver{
		chain: []imageProvider{first, second},
		fetch: resty.New().SetTimeout(5 * time.Second),
		blob:  &fakeUploader{url: "unused"},
	}

	err := r.ResolveAndStore(context.Background(), 1, "Learning Go")
	require.Error(t, err)
	assert.Equal(t, 0, *secondCalls)
}

func TestLookupPexels(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		gotQuery = req.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"photos": [{"src": {"large": "https://images.pexels.com/1/large.jpg"}}]}`))
	}))
	defer server.Close()

	r := &ThumbnailResolver{
		fetch:     resty.New().SetTimeout(5 * time.Second),
		pexelsKey: "pexels-key",
		pexelsURL: server.URL,
	}

	url, err := r.lookupPexels(context.Background(), "Learning Go")
	require.NoError(t, err)
	assert.Equal(t, "https://images.pexels.com/1/large.jpg", url)
	assert.Equal(t, "pexels-key", gotAuth)
	assert.Equal(t, "Learning Go", gotQuery)
}

func TestLookupPexelsNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"photos": []}`))
	}))
	defer server.Close()

	r := &ThumbnailResolver{
		fetch:     resty.New().SetTimeout(5 * time.Second),
		pexelsURL: server.URL,
	}

	url, err := r.lookupPexels(context.Background(), "Learning Go")
	require.NoError(t, err)
	assert.Equal(t, "", url)
}

func TestSlugifyTitle(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Learning Go", "learning-go"},
		{"  Spaced   Out  Title ", "spaced-out-title"},
		{"C++ & Friends!", "c-friends"},
		{"already-slugged", "already-slugged"},
		{"123 Numbers", "123-numbers"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SlugifyTitle(tt.in), "input %q", tt.in)
	}
}

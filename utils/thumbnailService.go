package utils

import (
	"bytes"
	"context"
	"courseforge/database"
	"courseforge/models"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

const (
	thumbnailCallTimeout = 15 * time.Second
	pexelsBaseURL        = "https://api.pexels.com"
)

type blobUploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
}

// imageProvider is one step in the thumbnail fallback chain. lookup returns a
// candidate image URL, or "" when the provider has no result.
type imageProvider struct {
	name   string
	lookup func(ctx context.Context, title string) (string, error)
}

// ThumbnailResolver finds a representative image for a course title, trying
// providers in a fixed order, and uploads the first hit to blob storage.
type ThumbnailResolver struct {
	chain     []imageProvider
	fetch     *resty.Client
	blob      blobUploader
	pexelsKey string
	pexelsURL string
}

// NewThumbnailResolver wires the provider chain: Google image search first
// (when key and cx are configured), then Pexels (when its key is configured).
// With no providers or no blob storage the resolver never produces anything,
// it only logs.
func NewThumbnailResolver(searchApiKey, searchCx, pexelsApiKey string, blob *BlobStorage) *ThumbnailResolver {
	r := &ThumbnailResolver{
		fetch:     resty.New().SetTimeout(thumbnailCallTimeout),
		pexelsKey: pexelsApiKey,
		pexelsURL: pexelsBaseURL,
	}
	if blob != nil {
		r.blob = blob
	}

	if searchApiKey != "" && searchCx != "" {
		svc, err := customsearch.NewService(context.Background(), option.WithAPIKey(searchApiKey))
		if err != nil {
			log.Printf("Failed to create image search client: %v", err)
		} else {
			cx := searchCx
			r.chain = append(r.chain, imageProvider{
				name: "google-image-search",
				lookup: func(ctx context.Context, title string) (string, error) {
					resp, err := svc.Cse.List().
						Cx(cx).
						Q(title + " thumbnail").
						SearchType("image").
						ImgSize("large").
						ImgType("photo").
						Safe("active").
						Num(1).
						Context(ctx).
						Do()
					if err != nil {
						return "", err
					}
					if len(resp.Items) == 0 {
						return "", nil
					}
					return resp.Items[0].Link, nil
				},
			})
		}
	}

	if pexelsApiKey != "" {
		r.chain = append(r.chain, imageProvider{
			name:   "pexels",
			lookup: r.lookupPexels,
		})
	}

	return r
}

type pexelsSearchResponse struct {
	Photos []struct {
		Src struct {
			Large string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

func (r *ThumbnailResolver) lookupPexels(ctx context.Context, title string) (string, error) {
	result := new(pexelsSearchResponse)
	resp, err := r.fetch.R().
		SetContext(ctx).
		SetHeader("Authorization", r.pexelsKey).
		SetQueryParams(map[string]string{
			"query":       title,
			"orientation": "landscape",
			"per_page":    "1",
		}).
		SetResult(result).
		Get(r.pexelsURL + "/v1/search")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("pexels returned status %d", resp.StatusCode())
	}
	if len(result.Photos) == 0 {
		return "", nil
	}
	return result.Photos[0].Src.Large, nil
}

// resolveURL walks the provider chain and returns the first candidate image
// URL. Provider errors are logged and the next provider is tried; once a
// provider yields a candidate the chain stops for good.
func (r *ThumbnailResolver) resolveURL(ctx context.Context, title string) string {
	for _, p := range r.chain {
		url, err := p.lookup(ctx, title)
		if err != nil {
			log.Printf("Thumbnail provider %s failed for %q: %v", p.name, title, err)
			continue
		}
		if url != "" {
			return url
		}
	}
	return ""
}

// ResolveAndStore finds a thumbnail for the course, uploads it to blob
// storage and persists the public URL onto the course record. It runs
// out-of-band after generation; failures leave the course without a
// thumbnail and are only visible in the enrichment task log.
func (r *ThumbnailResolver) ResolveAndStore(ctx context.Context, courseID uint, title string) error {
	if r.blob == nil || len(r.chain) == 0 {
		return fmt.Errorf("thumbnail resolution skipped: %w", ErrProviderUnavailable)
	}

	candidate := r.resolveURL(ctx, title)
	if candidate == "" {
		return fmt.Errorf("no thumbnail candidate found for %q", title)
	}

	// The chain stopped at this candidate; a failed fetch or upload does not
	// fall through to the next provider.
	resp, err := r.fetch.R().SetContext(ctx).Get(candidate)
	if err != nil {
		return fmt.Errorf("failed to fetch thumbnail image: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("thumbnail image fetch returned status %d", resp.StatusCode())
	}

	body := resp.Body()
	key := fmt.Sprintf("course-thumbnails/%d-%s.jpg", time.Now().Unix(), SlugifyTitle(title))
	url, err := r.blob.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), resp.Header().Get("Content-Type"))
	if err != nil {
		return err
	}

	if err := database.Database.Db.Model(&models.Course{}).
		Where("id = ? AND is_deleted = ?", courseID, false).
		Update("thumbnail_url", url).Error; err != nil {
		return fmt.Errorf("failed to store thumbnail url: %w", err)
	}
	return nil
}

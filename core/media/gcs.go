package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/irsalhamdi/online-store/random"
)

// GCS writes uploads to a bucket whose objects are publicly readable.
type GCS struct {
	Client        *storage.Client
	Bucket        string
	Folder        string
	PublicBaseURL string
}

func NewGCS(client *storage.Client, bucket, folder, baseURL string) *GCS {
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com"
	}
	return &GCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		Folder:        strings.Trim(folder, "/"),
		PublicBaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (g *GCS) Upload(ctx context.Context, f File) (string, error) {
	name := random.String(20) + "." + f.Ext()
	if g.Folder != "" {
		name = g.Folder + "/" + name
	}

	w := g.Client.Bucket(g.Bucket).Object(name).NewWriter(ctx)
	w.ContentType = f.ContentType
	w.Metadata = map[string]string{
		"originalName": f.Name,
		"uploadedAt":   time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := io.Copy(w, f.Body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("writing gs://%s/%s: %w", g.Bucket, name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finishing gs://%s/%s: %w", g.Bucket, name, err)
	}

	return g.objectURL(name), nil
}

func (g *GCS) objectURL(name string) string {
	segs := strings.Split(name, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return g.PublicBaseURL + "/" + url.PathEscape(g.Bucket) + "/" + strings.Join(segs, "/")
}

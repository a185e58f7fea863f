// Package media relays uploaded images to an external host and hands back
// the permanent URL the host assigned.
package media

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

var (
	ErrNoFile    = errors.New("no file uploaded")
	ErrBadFormat = errors.New("file format not allowed")
)

// AllowedFormats are the image extensions the relay accepts.
var AllowedFormats = []string{"jpg", "jpeg", "png", "gif"}

type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Ext is the lower-case extension of the file name, without the dot.
func (f File) Ext() string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(f.Name), "."))
}

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

func checkFormat(f File) error {
	ext := f.Ext()
	for _, a := range AllowedFormats {
		if ext == a {
			return nil
		}
	}
	return ErrBadFormat
}

type timeoutUploader struct {
	Uploader
	timeout time.Duration
}

// WithTimeout bounds every upload made through up. A zero timeout returns up.
func WithTimeout(up Uploader, timeout time.Duration) Uploader {
	if timeout <= 0 {
		return up
	}
	return timeoutUploader{Uploader: up, timeout: timeout}
}

func (t timeoutUploader) Upload(ctx context.Context, f File) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return t.Uploader.Upload(ctx, f)
}

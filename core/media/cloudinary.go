package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("configuring cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, f File) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, f.Body, uploader.UploadParams{
		Folder:         c.folder,
		AllowedFormats: AllowedFormats,
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s to cloudinary: %w", f.Name, err)
	}
	if resp == nil {
		return "", errors.New("cloudinary returned no result")
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected %s: %s", f.Name, resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", errors.New("cloudinary returned no url")
	}

	return resp.SecureURL, nil
}

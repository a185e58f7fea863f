package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/online-store/api/web"
	"github.com/irsalhamdi/online-store/api/weberr"
)

// FormField is the multipart field carrying the image.
const FormField = "photo"

type uploaded struct {
	URL string `json:"url"`
}

func HandleUpload(up Uploader, maxBytes int64) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		file, header, err := r.FormFile(FormField)
		if err != nil {
			var mbe *http.MaxBytesError
			switch {
			case errors.As(err, &mbe):
				return weberr.NewError(err, "file too large", http.StatusRequestEntityTooLarge)
			case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
				return weberr.UserError(ErrNoFile, http.StatusBadRequest)
			default:
				return weberr.BadRequest(fmt.Errorf("reading upload: %w", err))
			}
		}
		defer file.Close()

		f := File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}
		if err := checkFormat(f); err != nil {
			return weberr.UserError(
				fmt.Errorf("%w: %q", err, f.Ext()),
				http.StatusBadRequest,
			)
		}

		url, err := up.Upload(ctx, f)
		if err != nil {
			return weberr.NewError(
				err,
				"failed to upload photo",
				http.StatusInternalServerError,
				weberr.WithFields(map[string]any{"file": f.Name, "size": f.Size}),
			)
		}

		return web.Respond(ctx, w, uploaded{URL: url}, http.StatusOK)
	}
}

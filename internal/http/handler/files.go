package handler

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"collabcore/internal/storage"
	"collabcore/internal/transport"
)

var errStagingDisabled = errors.New("object storage is not configured")

type closers []io.Closer

func (cs closers) Close() error {
	var errs []error
	for _, c := range cs {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// isMultipart reports whether the request carries a multipart/form-data body.
func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// collectFiles opens the multipart files under field followed by the staged keys.
// The closer must be closed once the upload is done, even on error.
func collectFiles(c *fiber.Ctx, s storage.Storage, field string, keys []string) ([]transport.File, io.Closer, error) {
	var (
		files []transport.File
		open  closers
	)
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, open, err
		}
		for _, fh := range form.File[field] {
			f, err := fh.Open()
			if err != nil {
				return nil, open, err
			}
			open = append(open, f)
			files = append(files, transport.File{Name: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Reader: f})
		}
	}
	if len(keys) == 0 {
		return files, open, nil
	}
	if s == nil {
		return nil, open, errStagingDisabled
	}
	staged, closer, err := storage.Open(c.UserContext(), s, keys...)
	if err != nil {
		return nil, open, err
	}
	open = append(open, closer)
	return append(files, staged...), open, nil
}

// fileError maps a collectFiles failure onto a response.
func fileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errStagingDisabled):
		return writeError(c, fiber.StatusNotImplemented, "STAGING_DISABLED", "object storage is not configured")
	case errors.Is(err, storage.ErrInvalidKey):
		return writeError(c, fiber.StatusBadRequest, "INVALID_KEY", "invalid staged key")
	case errors.Is(err, storage.ErrNotStaged):
		return writeError(c, fiber.StatusNotFound, "NOT_STAGED", "staged file not found")
	default:
		return writeError(c, fiber.StatusBadRequest, "INVALID_FILE", "file cannot be read")
	}
}

// discardStaged removes staged objects that were forwarded upstream. Failures only log;
// leftovers expire with the bucket lifecycle.
func discardStaged(c *fiber.Ctx, s storage.Storage, keys []string) {
	if s == nil || len(keys) == 0 {
		return
	}
	if err := storage.Discard(c.UserContext(), s, keys...); err != nil {
		slog.Default().Warn("staged_discard_failed", "error", err, "request_id", requestIDFromCtx(c))
	}
}

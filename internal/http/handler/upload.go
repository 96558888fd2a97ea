package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"pitchapi/internal/validator"
)

// filesField is the repeatable multipart field carrying documents.
const filesField = "files"

var errNoUploads = errors.New("no files uploaded")

// readUploads loads every file of the multipart files field into memory.
func readUploads(c *fiber.Ctx) ([]validator.Document, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errNoUploads
	}

	headers := form.File[filesField]
	docs := make([]validator.Document, 0, len(headers))
	for _, fh := range headers {
		if fh.Filename == "" {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		b, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		docs = append(docs, validator.Document{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     b,
		})
	}
	if len(docs) == 0 {
		return nil, errNoUploads
	}
	return docs, nil
}

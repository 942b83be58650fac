package handler

import (
	"fmt"
	"io"

	"skillgap/internal/delivery/http/middleware"
	"skillgap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const defaultMaxUploadBytes int64 = 10 << 20

// readUpload loads the multipart "file" field, rejecting files above
// maxBytes.
func readUpload(c fiber.Ctx, maxBytes int64) (usecase.Upload, error) {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return usecase.Upload{}, middleware.NewAppError(fiber.StatusBadRequest, "Missing file field", nil, err)
	}
	if fh.Size > maxBytes {
		return usecase.Upload{}, middleware.NewAppError(
			fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File exceeds %d bytes", maxBytes),
			nil, nil,
		)
	}

	f, err := fh.Open()
	if err != nil {
		return usecase.Upload{}, middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return usecase.Upload{}, middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	if int64(len(data)) > maxBytes {
		return usecase.Upload{}, middleware.NewAppError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds %d bytes", maxBytes), nil, nil)
	}

	return usecase.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

package handler

import (
	"errors"
	"strconv"
	"strings"

	"skillgap/internal/delivery/http/middleware"
	"skillgap/internal/pkg/response"
	"skillgap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// noGapMessage is shown when recommendations are asked for before any gap
// computation.
const noGapMessage = "No gap analysis found. Complete a skill gap test first."

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrUnsupportedFileType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unsupported file type: upload a PDF or DOCX document", nil, err)
	case errors.Is(err, usecase.ErrUnreadableDocument):
		return middleware.NewAppError(fiber.StatusBadRequest, "Document could not be read", nil, err)
	case errors.Is(err, usecase.ErrMalformedCatalog):
		return middleware.NewAppError(fiber.StatusBadRequest, `Malformed catalog: expected {"courses": [...]}`, nil, err)
	case errors.Is(err, usecase.ErrNoGapSnapshot):
		return middleware.NewAppError(fiber.StatusNotFound, noGapMessage, nil, err)
	case errors.Is(err, usecase.ErrPageFetchFailed):
		return middleware.NewAppError(fiber.StatusBadGateway, response.MessageBadGateway, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func userIDParam(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("user_id")))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid user_id", nil, err)
	}
	return id, nil
}

// intQuery parses an optional integer query parameter.
func intQuery(c fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return n, nil
}

func boolQuery(c fiber.Ctx, key string) (bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return b, nil
}

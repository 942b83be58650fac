package handler

import (
	"strings"

	"skillgap/internal/delivery/http/dto"
	"skillgap/internal/delivery/http/middleware"
	"skillgap/internal/pkg/response"
	"skillgap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const defaultImportMode = "upsert"

type CatalogHandler struct {
	uc       usecase.CatalogUsecase
	maxBytes int64
}

func NewCatalogHandler(uc usecase.CatalogUsecase, maxBytes int64) *CatalogHandler {
	return &CatalogHandler{uc: uc, maxBytes: maxBytes}
}

// RegisterSearchRoutes mounts the public catalog endpoints.
func (h *CatalogHandler) RegisterSearchRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/catalog/search", h.Search)
}

// RegisterImportRoutes mounts catalog import behind auth.
func (h *CatalogHandler) RegisterImportRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil || auth == nil {
		return
	}
	r.Post("/catalog/import", auth, h.Import)
}

// Import accepts the export either as a multipart "file" or as the raw JSON
// request body.
func (h *CatalogHandler) Import(c fiber.Ctx) error {
	mode := strings.TrimSpace(c.Query("mode"))

	var data []byte
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		up, err := readUpload(c, h.maxBytes)
		if err != nil {
			return err
		}
		data = up.Data
		if mode == "" {
			mode = strings.TrimSpace(c.FormValue("mode"))
		}
	} else {
		data = c.Body()
	}
	if len(data) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Empty catalog payload", nil, nil)
	}
	if mode == "" {
		mode = defaultImportMode
	}

	stats, err := h.uc.Import(c.Context(), data, mode)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CatalogImportResponse{Mode: strings.ToLower(mode), Stats: stats})
}

func (h *CatalogHandler) Search(c fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query"))
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		return err
	}

	courses, err := h.uc.Search(c.Context(), query, limit)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.CourseResponse, 0, len(courses))
	for _, co := range courses {
		out = append(out, dto.NewCourseResponse(co))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CatalogSearchResponse{Query: query, Count: len(out), Results: out})
}

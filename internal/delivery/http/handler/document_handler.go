package handler

import (
	"skillgap/internal/delivery/http/dto"
	"skillgap/internal/pkg/response"
	"skillgap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DocumentHandler struct {
	uc       usecase.DocumentUsecase
	maxBytes int64
}

func NewDocumentHandler(uc usecase.DocumentUsecase, maxBytes int64) *DocumentHandler {
	return &DocumentHandler{uc: uc, maxBytes: maxBytes}
}

func (h *DocumentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/documents")
	grp.Post("/text", h.ExtractText)
	grp.Post("/entities", h.ExtractEntities)
}

func (h *DocumentHandler) ExtractText(c fiber.Ctx) error {
	up, err := readUpload(c, h.maxBytes)
	if err != nil {
		return err
	}

	text, err := h.uc.ExtractText(up)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TextResponse{
		Filename:    up.Filename,
		Filesize:    len(up.Data),
		ContentType: up.ContentType,
		Text:        text,
	})
}

func (h *DocumentHandler) ExtractEntities(c fiber.Ctx) error {
	up, err := readUpload(c, h.maxBytes)
	if err != nil {
		return err
	}

	ext, err := h.uc.ExtractEntities(up)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.EntitiesResponse{
		Filename:    up.Filename,
		Filesize:    len(up.Data),
		ContentType: up.ContentType,
		Entities:    ext,
	})
}

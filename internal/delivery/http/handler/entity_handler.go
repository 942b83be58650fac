package handler

import (
	"skillgap/internal/delivery/http/dto"
	"skillgap/internal/delivery/http/middleware"
	"skillgap/internal/pkg/response"
	"skillgap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EntityHandler struct {
	uc       usecase.EntityUsecase
	maxBytes int64
}

type jdFromURLRequest struct {
	URL  string `json:"url"`
	Mode string `json:"mode"`
}

func NewEntityHandler(uc usecase.EntityUsecase, maxBytes int64) *EntityHandler {
	return &EntityHandler{uc: uc, maxBytes: maxBytes}
}

// RegisterJDRoutes mounts the job-description endpoints on r behind auth.
func (h *EntityHandler) RegisterJDRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil || auth == nil {
		return
	}

	r.Post("/jd-entities", auth, h.SaveJD)
	r.Post("/jd-entities/url", auth, h.SaveJDFromURL)
}

// RegisterCVRoutes expects r to be scoped to /users/:user_id.
func (h *EntityHandler) RegisterCVRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/cv-entities", h.SaveCV)
}

func (h *EntityHandler) SaveCV(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}
	up, err := readUpload(c, h.maxBytes)
	if err != nil {
		return err
	}

	res, err := h.uc.SaveCVEntities(c.Context(), userID, up)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SaveEntitiesResponse{Saved: res.Saved, Entities: res.Entities})
}

func (h *EntityHandler) SaveJD(c fiber.Ctx) error {
	mode, err := usecase.ParseJDSaveMode(c.FormValue("mode", c.Query("mode")))
	if err != nil {
		return mapUsecaseError(err)
	}
	up, err := readUpload(c, h.maxBytes)
	if err != nil {
		return err
	}

	res, err := h.uc.SaveJDEntities(c.Context(), up, mode)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SaveEntitiesResponse{Saved: res.Saved, Entities: res.Entities})
}

func (h *EntityHandler) SaveJDFromURL(c fiber.Ctx) error {
	var req jdFromURLRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	mode, err := usecase.ParseJDSaveMode(req.Mode)
	if err != nil {
		return mapUsecaseError(err)
	}

	res, err := h.uc.SaveJDEntitiesFromURL(c.Context(), req.URL, mode)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SaveEntitiesResponse{Saved: res.Saved, Entities: res.Entities})
}

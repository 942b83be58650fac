package handler

import (
	"skillgap/internal/delivery/http/dto"
	"skillgap/internal/pkg/response"
	"skillgap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type GapHandler struct {
	uc usecase.GapUsecase
}

func NewGapHandler(uc usecase.GapUsecase) *GapHandler {
	return &GapHandler{uc: uc}
}

// RegisterRoutes expects r to be scoped to /users/:user_id.
func (h *GapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/gap", h.Compute)
	r.Get("/gap", h.Latest)
	r.Get("/gap/history", h.History)
}

func (h *GapHandler) Compute(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	snap, err := h.uc.ComputeGap(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewGapResponse(userID, snap, true))
}

func (h *GapHandler) Latest(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	snap, found, err := h.uc.LatestGap(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewGapResponse(userID, snap, found))
}

func (h *GapHandler) History(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}
	limit, err := intQuery(c, "limit", 20)
	if err != nil {
		return err
	}

	snaps, err := h.uc.GapHistory(c.Context(), userID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.GapResponse, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, dto.NewGapResponse(userID, s, true))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.GapHistoryResponse{UserID: userID, Count: len(out), Snapshots: out})
}

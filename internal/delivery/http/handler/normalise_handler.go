package handler

import (
	"skillgap/internal/delivery/http/dto"
	"skillgap/internal/pkg/response"
	"skillgap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NormaliseHandler struct {
	uc usecase.NormaliseUsecase
}

func NewNormaliseHandler(uc usecase.NormaliseUsecase) *NormaliseHandler {
	return &NormaliseHandler{uc: uc}
}

// RegisterRoutes expects r to be scoped to /users/:user_id.
func (h *NormaliseHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/normalised-entities", h.NormaliseAll)
	r.Get("/normalised-entities", h.List)
}

func (h *NormaliseHandler) NormaliseAll(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	matches, err := h.uc.NormaliseAll(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NormaliseResponse{
		UserID:             userID,
		NormalisedEntities: matches,
		Count:              len(matches),
	})
}

func (h *NormaliseHandler) List(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListNormalised(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewNormalisedListResponse(userID, items))
}

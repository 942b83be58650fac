package handler

import (
	"errors"

	"skillgap/internal/delivery/http/dto"
	"skillgap/internal/delivery/http/middleware"
	"skillgap/internal/pkg/response"
	"skillgap/internal/usecase"
	useruc "skillgap/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// RegisterRoutes expects r to be scoped to /users/:user_id.
func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Get)
}

func (h *UserHandler) Get(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	usr, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, useruc.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

package handler

import (
	"strings"

	"skillgap/internal/delivery/http/dto"
	"skillgap/internal/pkg/response"
	"skillgap/internal/recommend"
	"skillgap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

// RegisterRoutes expects r to be scoped to /users/:user_id.
func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/recommendations", h.Recommend)
}

func (h *RecommendationHandler) Recommend(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}
	limit, err := intQuery(c, "limit_per_skill", recommend.DefaultLimitPerSkill)
	if err != nil {
		return err
	}
	rank, err := boolQuery(c, "rank")
	if err != nil {
		return err
	}

	res, err := h.uc.Recommend(c.Context(), userID, usecase.RecommendInput{
		LimitPerSkill: limit,
		Source:        strings.TrimSpace(c.Query("source")),
		Rank:          rank,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	missing := res.Missing
	if missing == nil {
		missing = []string{}
	}
	recs := res.Recommendations
	if recs == nil {
		recs = map[string][]recommend.Candidate{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RecommendationResponse{
		UserID:             res.UserID,
		Source:             res.Source,
		MissingEntities:    missing,
		Recommendations:    recs,
		TotalSkillsCovered: len(recs),
	})
}

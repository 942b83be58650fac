package v1

import (
	"skillgap/internal/delivery/http/handler"
	"skillgap/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Document       *handler.DocumentHandler
	Entity         *handler.EntityHandler
	Gap            *handler.GapHandler
	Normalise      *handler.NormaliseHandler
	Catalog        *handler.CatalogHandler
	Recommendation *handler.RecommendationHandler
}

// Register mounts the v1 API. Everything under /users/:user_id requires an
// access token belonging to that user; JD extraction and catalog import
// require any valid access token.
func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil || authMw == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Document != nil {
		h.Document.RegisterRoutes(r)
	}
	if h.Entity != nil {
		h.Entity.RegisterJDRoutes(r, authMw.Middleware())
	}
	if h.Catalog != nil {
		h.Catalog.RegisterSearchRoutes(r)
		h.Catalog.RegisterImportRoutes(r, authMw.Middleware())
	}

	self := r.Group("/users/:user_id", authMw.Middleware(), middleware.RequireSelf("user_id"))
	if h.User != nil {
		h.User.RegisterRoutes(self)
	}
	if h.Entity != nil {
		h.Entity.RegisterCVRoutes(self)
	}
	if h.Gap != nil {
		h.Gap.RegisterRoutes(self)
	}
	if h.Normalise != nil {
		h.Normalise.RegisterRoutes(self)
	}
	if h.Recommendation != nil {
		h.Recommendation.RegisterRoutes(self)
	}
}

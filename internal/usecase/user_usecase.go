package usecase

import (
	"context"

	"skillgap/internal/domain/user"
	ucuser "skillgap/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (user.User, error)
}

type User struct {
	svc *ucuser.Service
}

func NewUserUsecase(users user.Repository) *User {
	return &User{svc: ucuser.NewService(users)}
}

func (u *User) Get(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.svc.Get(ctx, userID)
}

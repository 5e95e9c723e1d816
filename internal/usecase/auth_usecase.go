package usecase

import (
	"context"
	"strings"

	"github.com/fadilmartias/cv-dashboard/internal/dto"
	"github.com/fadilmartias/cv-dashboard/internal/repository"
	"github.com/fadilmartias/cv-dashboard/internal/service"
	"github.com/fadilmartias/cv-dashboard/internal/session"
	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/sirupsen/logrus"
)

type AuthUsecase struct {
	backend    service.BackendServiceInterface
	workspaces repository.WorkspaceRepositoryInterface
	log        *logrus.Logger
}

func NewAuthUsecase(backend service.BackendServiceInterface, workspaces repository.WorkspaceRepositoryInterface, log *logrus.Logger) *AuthUsecase {
	return &AuthUsecase{backend: backend, workspaces: workspaces, log: log}
}

func (uc *AuthUsecase) Login(ctx context.Context, req dto.LoginRequest) (session.Session, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return session.Anonymous(), util.E(util.CodeInvalidArgument, "AuthUsecase.Login", "email and password are required", nil)
	}

	token, err := uc.backend.Login(ctx, email, req.Password)
	if err != nil {
		uc.log.WithError(err).WithField("email", email).Info("login rejected")
		return session.Anonymous(), err
	}
	return session.FromToken(token), nil
}

func (uc *AuthUsecase) Register(ctx context.Context, req dto.RegisterRequest) (string, error) {
	name, email := strings.TrimSpace(req.Name), strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return "", util.E(util.CodeInvalidArgument, "AuthUsecase.Register", "name, email and password are required", nil)
	}
	return uc.backend.Register(ctx, name, email, req.Password)
}

// Logout forgets the workspace of sess and stops its pollers.
func (uc *AuthUsecase) Logout(sess session.Session) {
	if token, ok := sess.Token(); ok {
		uc.workspaces.Drop(token)
	}
}

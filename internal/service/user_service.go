package service

import (
	"context"
	"strings"
	"time"

	"digraph-be/internal/dto"
	"digraph-be/internal/entity"
	"digraph-be/internal/pkg/logger"
	"digraph-be/internal/repository/specification"
	"digraph-be/internal/repository/unitofwork"
	"digraph-be/pkg/events"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	DeleteAccount(ctx context.Context, userId uuid.UUID, req *dto.DeleteAccountRequest) error
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher, log logger.ILogger) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func toProfile(user *entity.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}
}

func (s *userService) findUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && email != user.Email {
		other, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrEmailTaken
		}
		user.Email = email
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// DeleteAccount removes the user with all their topics and links after
// checking the password
func (s *userService) DeleteAccount(ctx context.Context, userId uuid.UUID, req *dto.DeleteAccountRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.findUser(ctx, uow, userId)
	if err != nil {
		return err
	}
	if !user.PasswordMatches(req.Password) {
		return ErrInvalidCredentials
	}

	err = uow.Transaction(ctx, func(tx unitofwork.UnitOfWork) error {
		if err := tx.LinkRepository().DeleteAllByUserIdUnscoped(ctx, userId); err != nil {
			return err
		}
		if err := tx.TopicRepository().DeleteAllByUserIdUnscoped(ctx, userId); err != nil {
			return err
		}
		return tx.UserRepository().DeleteUnscoped(ctx, userId)
	})
	if err != nil {
		return err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.UserAccountClosed, userId, nil)
	return nil
}

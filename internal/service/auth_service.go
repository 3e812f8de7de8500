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

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenExpiry = 24 * time.Hour

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, userAgent string) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	jwtSecret      string
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string, eventPublisher events.Publisher, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		jwtSecret:      jwtSecret,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: &hashStr,
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.UserRegistered, user.Id, nil)

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: strings.TrimSpace(req.Email)})
	if err != nil {
		return nil, err
	}
	if user == nil || !user.PasswordMatches(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if user.Blocked() {
		return nil, ErrUserBlocked
	}

	signedToken, err := s.signToken(user.Id)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.UserLogin, user.Id, map[string]interface{}{
		"device": userAgent,
		"time":   time.Now().Format(time.RFC822),
	})

	return &dto.LoginResponse{
		AccessToken: signedToken,
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
		},
	}, nil
}

func (s *authService) signToken(userId uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(accessTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

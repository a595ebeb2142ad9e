package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripplanner/internal/models/db_models"
	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/utils"
)

const accountStatusActive = "Active"

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*response_models.ProfileResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      *utils.JWTManager
	logger      *zap.Logger
	now         func() time.Time
}

func NewAccountService(accountRepo repositories.AccountRepository, tokens *utils.JWTManager, logger *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		logger:      logger.Named("account"),
		now:         time.Now,
	}
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AuthResponse, error) {
	existingAccount, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	now := a.now()
	newAccount := &db_models.Account{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(request.Name),
		Email:        strings.ToLower(strings.TrimSpace(request.Email)),
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		LastLoginAt:  now,
	}

	// Insert re-checks the email under its lock.
	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		return nil, err
	}

	a.logger.Info("account created", zap.String("account_id", newAccount.ID.String()))
	return a.authResponse(newAccount)
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error) {
	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	account.LastLoginAt = a.now()
	if err := a.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	a.logger.Debug("login verified",
		zap.String("account_id", account.ID.String()),
		zap.Duration("took", time.Since(startTime)))
	return a.authResponse(account)
}

func (a *AccountService) GetProfile(ctx context.Context, userID string) (*response_models.ProfileResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.Join(utils.ErrUnauthorized, err)
	}

	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	return &response_models.ProfileResponse{
		ID:            account.ID.String(),
		Name:          account.Name,
		Email:         account.Email,
		AccountStatus: accountStatusActive,
		MemberSince:   account.CreatedAt,
		LastLogin:     account.LastLoginAt,
	}, nil
}

func (a *AccountService) authResponse(account *db_models.Account) (*response_models.AuthResponse, error) {
	token, err := a.tokens.CreateToken(account.ID, account.Email, account.Name)
	if err != nil {
		return nil, err
	}
	return &response_models.AuthResponse{
		Token: token,
		User: response_models.AccountSummary{
			ID:    account.ID.String(),
			Name:  account.Name,
			Email: account.Email,
		},
	}, nil
}

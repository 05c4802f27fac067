// Package services contains server-side business logic. This file implements
// AccountService, which handles signup, profile reads and updates, and the
// admin-only listing, delegating every allow/deny decision to the auth
// policy.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userhub/internal/common"
	"github.com/dmitrijs2005/userhub/internal/dbx"
	"github.com/dmitrijs2005/userhub/internal/server/auth"
	"github.com/dmitrijs2005/userhub/internal/server/models"
	"github.com/dmitrijs2005/userhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// AccountService provides the account operations:
// - Register: open signup, mints an access token
// - Get / Update: self-or-admin access to a single account
// - List: admin-only paginated listing
// - CreateAdmin: out-of-band admin provisioning
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenService
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// RegisterParams carries the signup attributes. A zero Role means the
// default role.
type RegisterParams struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	MiddleName string
	Department string
	Role       models.Role
}

// RegisterResult bundles the created account with its first access token.
type RegisterResult struct {
	Account     *models.Account
	AccessToken string
}

// Register creates an account via open signup. Requesting the admin role is
// refused (common.ErrForbidden); a taken email yields common.ErrEmailExists.
func (s *AccountService) Register(ctx context.Context, p RegisterParams) (*RegisterResult, error) {
	role := p.Role
	if role == "" {
		role = models.DefaultRole
	}
	if !auth.CanCreate(role) {
		return nil, common.ErrForbidden
	}
	return s.register(ctx, p, role)
}

// CreateAdmin provisions an admin account, bypassing the open-signup policy.
// Reserved for trusted local tooling (cmd/useradmin); not reachable over HTTP.
func (s *AccountService) CreateAdmin(ctx context.Context, p RegisterParams) (*models.Account, error) {
	res, err := s.register(ctx, p, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return res.Account, nil
}

func (s *AccountService) register(ctx context.Context, p RegisterParams, role models.Role) (*RegisterResult, error) {
	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		Email:        p.Email,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		MiddleName:   p.MiddleName,
		Department:   p.Department,
		Role:         role,
	}

	// The uniqueness check and the insert run in one transaction; the unique
	// index still backstops a concurrent insert of the same email.
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		_, err := repo.GetByEmail(ctx, p.Email)
		if err == nil {
			return common.ErrEmailExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error checking email uniqueness: %w", err)
		}

		account, err = repo.Create(ctx, account)
		return err
	}); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &RegisterResult{Account: account, AccessToken: token}, nil
}

// Get returns the target account if the caller passes the view policy.
// The policy runs before any lookup, so an unauthorized caller learns nothing
// about whether the target exists.
func (s *AccountService) Get(ctx context.Context, caller auth.Caller, accountID string) (*models.Account, error) {
	if !auth.CanView(caller, accountID) {
		return nil, common.ErrForbidden
	}
	return s.repomanager.Accounts(s.db).GetByID(ctx, accountID)
}

// Update applies the mutable field set to the target account. A new password
// is re-derived into a fresh credential; email and role cannot change here by
// construction of models.AccountUpdate.
func (s *AccountService) Update(ctx context.Context, caller auth.Caller, accountID string, update models.AccountUpdate) (*models.Account, error) {
	if !auth.CanUpdate(caller, accountID) {
		return nil, common.ErrForbidden
	}

	if update.Empty() {
		return s.repomanager.Accounts(s.db).GetByID(ctx, accountID)
	}

	var newHash string
	if update.Password != nil {
		h, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		newHash = h
	}

	var updated *models.Account
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		account, err := repo.GetByID(ctx, accountID)
		if err != nil {
			return err
		}

		if update.FirstName != nil {
			account.FirstName = *update.FirstName
		}
		if update.LastName != nil {
			account.LastName = *update.LastName
		}
		if update.MiddleName != nil {
			account.MiddleName = *update.MiddleName
		}
		if update.Department != nil {
			account.Department = *update.Department
		}
		if update.Password != nil {
			account.PasswordHash = newHash
		}

		if err := repo.Update(ctx, account); err != nil {
			return err
		}
		updated = account
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// ListParams holds 1-based pagination inputs; out-of-range values fall back
// to defaults.
type ListParams struct {
	Page  int
	Limit int
}

type ListResult struct {
	Accounts []*models.Account
	Total    int64
	Page     int
	Pages    int64
}

// List returns one page of accounts; only admins pass the policy.
func (s *AccountService) List(ctx context.Context, caller auth.Caller, p ListParams) (*ListResult, error) {
	if !auth.CanList(caller) {
		return nil, common.ErrForbidden
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	repo := s.repomanager.Accounts(s.db)

	list, err := repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Accounts: list,
		Total:    total,
		Page:     page,
		Pages:    (total + int64(limit) - 1) / int64(limit),
	}, nil
}

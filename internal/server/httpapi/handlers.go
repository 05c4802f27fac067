// Package httpapi exposes the account service over HTTP. It is a thin
// transport layer: request decoding, edge validation, and mapping core
// outcomes to status codes. All decisions live in the service and the auth
// policy.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"time"

	"github.com/dmitrijs2005/userhub/internal/common"
	"github.com/dmitrijs2005/userhub/internal/server/auth"
	"github.com/dmitrijs2005/userhub/internal/server/models"
	"github.com/dmitrijs2005/userhub/internal/server/services"
	"github.com/labstack/echo/v4"
)

// AccountAPI is the slice of the account service the handlers consume.
type AccountAPI interface {
	Register(ctx context.Context, p services.RegisterParams) (*services.RegisterResult, error)
	Get(ctx context.Context, caller auth.Caller, accountID string) (*models.Account, error)
	Update(ctx context.Context, caller auth.Caller, accountID string, update models.AccountUpdate) (*models.Account, error)
	List(ctx context.Context, caller auth.Caller, p services.ListParams) (*services.ListResult, error)
}

type AccountHandler struct {
	accounts AccountAPI
}

func NewAccountHandler(accounts AccountAPI) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// accountView is the public representation of an account. The credential
// never appears here.
type accountView struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	MiddleName string    `json:"middleName,omitempty"`
	Department string    `json:"department,omitempty"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func newAccountView(a *models.Account) accountView {
	return accountView{
		ID:         a.ID,
		Email:      a.Email,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		MiddleName: a.MiddleName,
		Department: a.Department,
		Role:       string(a.Role),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

type createUserRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

func (r createUserRequest) validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("%w: please enter a valid email", common.ErrorValidation)
	}
	if r.FirstName == "" {
		return fmt.Errorf("%w: first name is required", common.ErrorValidation)
	}
	if r.LastName == "" {
		return fmt.Errorf("%w: last name is required", common.ErrorValidation)
	}
	return nil
}

type createUserResponse struct {
	Message string      `json:"message"`
	User    accountView `json:"user"`
	Token   string      `json:"token"`
}

// Create handles POST /api/users: open signup.
func (h *AccountHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return mapError(err)
	}

	var role models.Role
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
		}
		role = parsed
	}

	res, err := h.accounts.Register(c.Request().Context(), services.RegisterParams{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		Department: req.Department,
		Role:       role,
	})
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, createUserResponse{
		Message: "User created successfully",
		User:    newAccountView(res.Account),
		Token:   res.AccessToken,
	})
}

type viewUserResponse struct {
	User accountView `json:"user"`
}

// View handles GET /api/users/:id.
func (h *AccountHandler) View(c echo.Context) error {
	caller, ok := CallerFromContext(c)
	if !ok {
		return mapError(common.ErrUnauthenticated)
	}

	account, err := h.accounts.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, viewUserResponse{User: newAccountView(account)})
}

// updateUserRequest carries only the mutable fields; email and role sent in
// the body are simply not part of this type and get dropped on decode.
type updateUserRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	MiddleName *string `json:"middleName"`
	Department *string `json:"department"`
	Password   *string `json:"password"`
}

type updateUserResponse struct {
	Message string      `json:"message"`
	User    accountView `json:"user"`
}

// Update handles PATCH /api/users/:id.
func (h *AccountHandler) Update(c echo.Context) error {
	caller, ok := CallerFromContext(c)
	if !ok {
		return mapError(common.ErrUnauthenticated)
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	account, err := h.accounts.Update(c.Request().Context(), caller, c.Param("id"), models.AccountUpdate{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		Department: req.Department,
		Password:   req.Password,
	})
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, updateUserResponse{
		Message: "User updated successfully",
		User:    newAccountView(account),
	})
}

type paginationView struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
}

type listUsersResponse struct {
	Users      []accountView  `json:"users"`
	Pagination paginationView `json:"pagination"`
}

// List handles GET /api/users with optional page/limit query parameters.
func (h *AccountHandler) List(c echo.Context) error {
	caller, ok := CallerFromContext(c)
	if !ok {
		return mapError(common.ErrUnauthenticated)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	res, err := h.accounts.List(c.Request().Context(), caller, services.ListParams{Page: page, Limit: limit})
	if err != nil {
		return mapError(err)
	}

	users := make([]accountView, 0, len(res.Accounts))
	for _, a := range res.Accounts {
		users = append(users, newAccountView(a))
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Users: users,
		Pagination: paginationView{
			Total: res.Total,
			Page:  res.Page,
			Pages: res.Pages,
		},
	})
}

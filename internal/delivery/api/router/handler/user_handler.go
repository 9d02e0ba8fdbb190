package handler

import (
	"log/slog"
	"net/http"

	"bookmarks/internal/delivery/api/response"
	"bookmarks/internal/delivery/api/validator"
	deliverycontext "bookmarks/internal/delivery/context"
	"bookmarks/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// UserHandler serves the authenticated account's own profile.
type UserHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// EditUserRequest lists the profile fields a user may change.
type EditUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
}

type EmailResponse struct {
	Email string `json:"email"`
}

// GetMe returns the account resolved for this request.
func (h *UserHandler) GetMe(c echo.Context) error {
	account, ok := deliverycontext.AccountFromContext(c.Request().Context())
	if !ok {
		return response.Unauthorized(c)
	}

	return response.Success(c, http.StatusOK, account)
}

func (h *UserHandler) GetEmail(c echo.Context) error {
	account, ok := deliverycontext.AccountFromContext(c.Request().Context())
	if !ok {
		return response.Unauthorized(c)
	}

	return response.Success(c, http.StatusOK, EmailResponse{Email: account.Email})
}

// EditUser applies a partial profile update. Credentials cannot be changed here.
func (h *UserHandler) EditUser(c echo.Context) error {
	account, ok := deliverycontext.AccountFromContext(c.Request().Context())
	if !ok {
		return response.Unauthorized(c)
	}

	var req EditUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	updated, err := h.profileUC.EditProfile(c.Request().Context(), account.ID, usecase.EditProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, updated)
}

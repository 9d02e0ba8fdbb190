package handler

import (
	"log/slog"
	"net/http"

	"bookmarks/internal/delivery/api/response"
	"bookmarks/internal/delivery/api/validator"
	deliverycontext "bookmarks/internal/delivery/context"
	"bookmarks/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BookmarkHandlerParams holds dependencies for BookmarkHandler, injected by Fx.
type BookmarkHandlerParams struct {
	fx.In

	BookmarkUC usecase.BookmarkUsecase
	Logger     *slog.Logger
}

// BookmarkHandler holds dependencies for bookmark-related handlers
type BookmarkHandler struct {
	bookmarkUC usecase.BookmarkUsecase
	logger     *slog.Logger
}

func NewBookmarkHandler(params BookmarkHandlerParams) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkUC: params.BookmarkUC,
		logger:     params.Logger,
	}
}

type CreateBookmarkRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Link        string  `json:"link" validate:"required,url,max=2048"`
}

// EditBookmarkRequest represents a partial bookmark update; absent fields are kept.
type EditBookmarkRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Link        *string `json:"link" validate:"omitempty,url,max=2048"`
}

func (h *BookmarkHandler) ListBookmarks(c echo.Context) error {
	account, ok := deliverycontext.AccountFromContext(c.Request().Context())
	if !ok {
		return response.Unauthorized(c)
	}

	bookmarks, err := h.bookmarkUC.List(c.Request().Context(), account.ID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, bookmarks)
}

func (h *BookmarkHandler) GetBookmark(c echo.Context) error {
	account, ok := deliverycontext.AccountFromContext(c.Request().Context())
	if !ok {
		return response.Unauthorized(c)
	}

	bookmarkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequestWithDetails(c, "INVALID_ID", "Invalid bookmark ID", nil)
	}

	bookmark, err := h.bookmarkUC.Get(c.Request().Context(), account.ID, bookmarkID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, bookmark)
}

func (h *BookmarkHandler) CreateBookmark(c echo.Context) error {
	account, ok := deliverycontext.AccountFromContext(c.Request().Context())
	if !ok {
		return response.Unauthorized(c)
	}

	var req CreateBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid bookmark input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	bookmark, err := h.bookmarkUC.Create(c.Request().Context(), account.ID, usecase.CreateBookmarkInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, bookmark)
}

func (h *BookmarkHandler) EditBookmark(c echo.Context) error {
	account, ok := deliverycontext.AccountFromContext(c.Request().Context())
	if !ok {
		return response.Unauthorized(c)
	}

	bookmarkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequestWithDetails(c, "INVALID_ID", "Invalid bookmark ID", nil)
	}

	var req EditBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid bookmark input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	bookmark, err := h.bookmarkUC.Edit(c.Request().Context(), account.ID, bookmarkID, usecase.EditBookmarkInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, bookmark)
}

// DeleteBookmark answers 204 with an empty body.
func (h *BookmarkHandler) DeleteBookmark(c echo.Context) error {
	account, ok := deliverycontext.AccountFromContext(c.Request().Context())
	if !ok {
		return response.Unauthorized(c)
	}

	bookmarkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequestWithDetails(c, "INVALID_ID", "Invalid bookmark ID", nil)
	}

	if err := h.bookmarkUC.Delete(c.Request().Context(), account.ID, bookmarkID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

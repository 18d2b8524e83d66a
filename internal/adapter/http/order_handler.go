package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okey68/paya-marketplace-sub000/internal/usecase/order"
)

type OrderHandler struct{ uc *order.Usecase }

func NewOrderHandler(uc *order.Usecase) *OrderHandler { return &OrderHandler{uc: uc} }

type updateStatusReq struct {
	Status           string `json:"status" validate:"required"`
	Reason           string `json:"reason"`
	SkipVerification bool   `json:"skip_verification"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.UpdateStatus(c.Request().Context(), order.UpdateStatusInput{
		OrderID:          c.Param("order_id"),
		Status:           req.Status,
		ActorID:          actorID(c),
		Reason:           req.Reason,
		SkipVerification: req.SkipVerification,
	})
	if err != nil {
		// the status change committed; the verification side effect did
		// not, so the caller gets the conflict plus the current state
		if errors.Is(err, order.ErrVerificationInit) && dto != nil {
			return c.JSON(http.StatusConflict, map[string]any{
				"error": err.Error(),
				"order": dto,
			})
		}
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OrderHandler) Underwrite(c echo.Context) error {
	dto, err := h.uc.Underwrite(c.Request().Context(), c.Param("order_id"), actorID(c))
	if err != nil {
		if errors.Is(err, order.ErrVerificationInit) && dto != nil {
			return c.JSON(http.StatusConflict, map[string]any{
				"error": err.Error(),
				"order": dto,
			})
		}
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OrderHandler) SignAgreement(c echo.Context) error {
	dto, err := h.uc.SignAgreement(c.Request().Context(), c.Param("order_id"), actorID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OrderHandler) CompleteOrder(c echo.Context) error {
	dto, err := h.uc.CompleteOrder(c.Request().Context(), c.Param("order_id"), actorID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("order_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

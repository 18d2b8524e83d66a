package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okey68/paya-marketplace-sub000/internal/usecase/verification"
)

type VerificationHandler struct{ uc *verification.Usecase }

func NewVerificationHandler(uc *verification.Usecase) *VerificationHandler {
	return &VerificationHandler{uc: uc}
}

type reasonReq struct {
	Reason string `json:"reason"`
}

type contactReq struct {
	Reason string `json:"reason" validate:"required"`
	Method string `json:"method" validate:"required,oneof=email phone sms"`
}

func (h *VerificationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("verification_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *VerificationHandler) Send(c echo.Context) error {
	dto, err := h.uc.SendEmail(c.Request().Context(), c.Param("verification_id"), actorID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *VerificationHandler) Resend(c echo.Context) error {
	dto, err := h.uc.Resend(c.Request().Context(), c.Param("verification_id"), actorID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *VerificationHandler) Verify(c echo.Context) error {
	var req reasonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.MarkVerified(c.Request().Context(), c.Param("verification_id"), actorID(c), req.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *VerificationHandler) Unverify(c echo.Context) error {
	var req reasonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.MarkUnverified(c.Request().Context(), c.Param("verification_id"), actorID(c), req.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *VerificationHandler) Contact(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.RecordCustomerContact(c.Request().Context(),
		c.Param("verification_id"), actorID(c), req.Reason, req.Method)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *VerificationHandler) Escalate(c echo.Context) error {
	var req reasonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Reason == "" {
		req.Reason = "escalated by " + actorID(c)
	}
	dto, err := h.uc.Escalate(c.Request().Context(), c.Param("verification_id"), req.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *VerificationHandler) Cancel(c echo.Context) error {
	var req reasonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Cancel(c.Request().Context(), c.Param("verification_id"), actorID(c), req.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	companyDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/company"
	customerDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/customer"
	orderDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/order"
	uwDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
	verifDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/verification"
	orderUC "github.com/okey68/paya-marketplace-sub000/internal/usecase/order"
)

// domainStatus maps sentinel domain errors to HTTP codes: 404 for
// missing records, 409 for state conflicts, 422 for inputs that bind
// but fail business rules.
func domainStatus(err error) int {
	switch {
	case errors.Is(err, orderDomain.ErrNotFound),
		errors.Is(err, verifDomain.ErrNotFound),
		errors.Is(err, companyDomain.ErrNotFound),
		errors.Is(err, customerDomain.ErrNotFound),
		errors.Is(err, uwDomain.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, verifDomain.ErrAlreadyExists),
		errors.Is(err, verifDomain.ErrAlreadyResolved),
		errors.Is(err, verifDomain.ErrAlreadyEscalated),
		errors.Is(err, verifDomain.ErrInvalidTransition),
		errors.Is(err, verifDomain.ErrReminderCapReached),
		errors.Is(err, orderDomain.ErrAlreadyComplete),
		errors.Is(err, orderDomain.ErrNotVerified),
		errors.Is(err, orderDomain.ErrAgreementNotSigned),
		errors.Is(err, uwDomain.ErrNoActiveModel),
		errors.Is(err, orderUC.ErrVerificationInit):
		return http.StatusConflict

	case errors.Is(err, verifDomain.ErrReasonRequired),
		errors.Is(err, verifDomain.ErrNoCustomer),
		errors.Is(err, verifDomain.ErrNoEmployerMatch),
		errors.Is(err, companyDomain.ErrNoHRContact),
		errors.Is(err, uwDomain.ErrInvalidSchedule),
		errors.Is(err, uwDomain.ErrInvalidModel),
		errors.Is(err, orderDomain.ErrUnknownStatus):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

func domainError(c echo.Context, err error) error {
	return c.JSON(domainStatus(err), ErrorResponse{Error: err.Error()})
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	companyDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/company"
	"github.com/okey68/paya-marketplace-sub000/internal/usecase/company"
)

type CompanyHandler struct{ uc *company.Usecase }

func NewCompanyHandler(uc *company.Usecase) *CompanyHandler { return &CompanyHandler{uc: uc} }

type hrContactReq struct {
	Name      string `json:"name"  validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	IsPrimary bool   `json:"is_primary"`
}

type createCompanyReq struct {
	CompanyName string         `json:"company_name" validate:"required"`
	Aliases     []string       `json:"aliases"`
	HRContacts  []hrContactReq `json:"hr_contacts"  validate:"required,min=1,dive"`
}

func (h *CompanyHandler) CreateCompany(c echo.Context) error {
	var req createCompanyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	contacts := make([]companyDomain.HRContact, 0, len(req.HRContacts))
	for _, hc := range req.HRContacts {
		contacts = append(contacts, companyDomain.HRContact(hc))
	}
	dto, err := h.uc.Create(c.Request().Context(), company.CreateCompanyInput{
		CompanyName: req.CompanyName,
		Aliases:     req.Aliases,
		HRContacts:  contacts,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CompanyHandler) GetCompany(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("company_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

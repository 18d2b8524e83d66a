package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	uwDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
	"github.com/okey68/paya-marketplace-sub000/internal/usecase/underwriting"
)

type ModelHandler struct{ uc *underwriting.Usecase }

func NewModelHandler(uc *underwriting.Usecase) *ModelHandler { return &ModelHandler{uc: uc} }

type saveModelReq struct {
	Metrics struct {
		MinAge              int     `json:"min_age"               validate:"gte=0"`
		MinIncome           float64 `json:"min_income"            validate:"gte=0,dec2"`
		MinYearsEmployed    float64 `json:"min_years_employed"    validate:"gte=0"`
		MinCreditScore      int     `json:"min_credit_score"      validate:"gte=0"`
		MaxDefaults         int     `json:"max_defaults"          validate:"gte=0"`
		MaxOtherObligations float64 `json:"max_other_obligations" validate:"gte=0,dec2"`
	} `json:"metrics"`
	Parameters struct {
		InterestRate           float64   `json:"interest_rate"             validate:"gte=0"`
		AdvanceRate            float64   `json:"advance_rate"              validate:"gte=0,lte=100"`
		TermMonths             int       `json:"term_months"               validate:"gt=0"`
		MaxMonthlyPaymentRatio float64   `json:"max_monthly_payment_ratio" validate:"gt=0,lte=100"`
		PaymentSchedule        []float64 `json:"payment_schedule"          validate:"required,min=1"`
	} `json:"parameters"`
	CreatedBy string `json:"created_by" validate:"required"`
}

func (h *ModelHandler) SaveModel(c echo.Context) error {
	var req saveModelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.SaveModel(c.Request().Context(), underwriting.SaveModelInput{
		Metrics:    uwDomain.Metrics(req.Metrics),
		Parameters: uwDomain.Parameters(req.Parameters),
		CreatedBy:  req.CreatedBy,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ModelHandler) ActiveModel(c echo.Context) error {
	dto, err := h.uc.ActiveModel(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

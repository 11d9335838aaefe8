package tuition

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tundavala/escola/core"
)

// Request contains the selections of the tuition calculator.
// Level and mode are only checked for presence here; the pricing tables decide whether they exist.
type Request struct {
	EducationLevel string `json:"educationLevel" validate:"required,notblank"`
	PaymentMode    string `json:"paymentMode" validate:"required,notblank"`
	StudentCount   int    `json:"studentCount" validate:"min=1,max=10"`
	EarlyPayment   *bool  `json:"earlyPayment" validate:"required"`
}

func (req *Request) Validate(validate *validator.Validate) error {
	req.EducationLevel = core.CleanString(req.EducationLevel)
	req.PaymentMode = core.CleanString(req.PaymentMode)
	return validate.Struct(req)
}

func (req Request) earlyPayment() bool {
	return req.EarlyPayment != nil && *req.EarlyPayment
}

// Calculation is the record kept for every successful quote.
type Calculation struct {
	ID                string          `json:"id"`
	EducationLevel    EducationLevel  `json:"educationLevel"`
	PaymentMode       PaymentMode     `json:"paymentMode"`
	StudentCount      int             `json:"studentCount"`
	EarlyPayment      int             `json:"earlyPayment"` // 0 or 1
	BasePrice         decimal.Decimal `json:"basePrice"`
	FinalAmount       decimal.Decimal `json:"finalAmount"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
	CreatedAt         time.Time       `json:"createdAt"` // UTC
}

func newCalculation(q Quote) Calculation {
	calc := Calculation{
		EducationLevel:    q.EducationLevel,
		PaymentMode:       q.PaymentMode,
		StudentCount:      q.StudentCount,
		BasePrice:         q.BasePrice,
		FinalAmount:       q.FinalAmount,
		InstallmentAmount: q.InstallmentAmount,
	}
	if q.EarlyPayment {
		calc.EarlyPayment = 1
	}
	return calc
}

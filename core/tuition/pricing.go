package tuition

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/tundavala/escola/core"
)

const (
	earlyPaymentDiscount = 5 // percent

	minStudentCount = 1
	maxStudentCount = 10
)

var (
	ErrInvalidEducationLevel = errors.New("invalid education level")
	ErrInvalidPaymentMode    = errors.New("invalid payment mode")
)

func init() {
	// amounts are sent to clients as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type EducationLevel string

const (
	Primario    EducationLevel = "primario"
	Secundario  EducationLevel = "secundario"
	Intercambio EducationLevel = "intercambio"
)

// EducationLevels lists every level, in display order.
var EducationLevels = []EducationLevel{Primario, Secundario, Intercambio}

// BasePrice is the per-student price of a level, in Kwanza.
func (lvl EducationLevel) BasePrice() (decimal.Decimal, error) {
	switch lvl {
	case Primario:
		return decimal.NewFromInt(25000), nil
	case Secundario:
		return decimal.NewFromInt(35000), nil
	case Intercambio:
		return decimal.NewFromInt(50000), nil
	default:
		return decimal.Zero, core.NewValidationError(ErrInvalidEducationLevel)
	}
}

type PaymentMode string

const (
	Mensal     PaymentMode = "mensal"
	Trimestral PaymentMode = "trimestral"
	Semestral  PaymentMode = "semestral"
	Anual      PaymentMode = "anual"
)

var PaymentModes = []PaymentMode{Mensal, Trimestral, Semestral, Anual}

// paymentTerms is what a payment mode grants: a discount and the number of months billed per installment.
type paymentTerms struct {
	discount   int64 // percent
	multiplier int64
}

func (mode PaymentMode) terms() (paymentTerms, error) {
	switch mode {
	case Mensal:
		return paymentTerms{discount: 0, multiplier: 1}, nil
	case Trimestral:
		return paymentTerms{discount: 5, multiplier: 3}, nil
	case Semestral:
		return paymentTerms{discount: 10, multiplier: 6}, nil
	case Anual:
		return paymentTerms{discount: 15, multiplier: 12}, nil
	default:
		return paymentTerms{}, core.NewValidationError(ErrInvalidPaymentMode)
	}
}

// Quote is the full price breakdown of a tuition request.
type Quote struct {
	EducationLevel       EducationLevel  `json:"educationLevel"`
	PaymentMode          PaymentMode     `json:"paymentMode"`
	StudentCount         int             `json:"studentCount"`
	EarlyPayment         bool            `json:"earlyPayment"`
	BasePrice            decimal.Decimal `json:"basePrice"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	PaymentModeDiscount  int64           `json:"paymentModeDiscount"`  // percent
	EarlyPaymentDiscount int64           `json:"earlyPaymentDiscount"` // percent
	Discount             int64           `json:"discount"`             // percent
	DiscountAmount       decimal.Decimal `json:"discountAmount"`
	FinalAmount          decimal.Decimal `json:"finalAmount"`
	InstallmentAmount    decimal.Decimal `json:"installmentAmount"`
	PaymentFrequency     PaymentMode     `json:"paymentFrequency"`
}

// Calculate prices `students` students of `lvl` paying with `mode`.
// Both discounts are summed and applied once to the subtotal.
func Calculate(lvl EducationLevel, mode PaymentMode, students int, early bool) (Quote, error) {
	basePrice, err := lvl.BasePrice()
	if err != nil {
		return Quote{}, err
	}
	terms, err := mode.terms()
	if err != nil {
		return Quote{}, err
	}
	if students < minStudentCount || students > maxStudentCount {
		msg := fmt.Sprintf("studentCount must be between %d and %d", minStudentCount, maxStudentCount)
		return Quote{}, core.NewValidationError(
			errors.New("invalid data"),
			core.FieldError{Field: "studentCount", Error: msg},
		)
	}

	var earlyDiscount int64
	if early {
		earlyDiscount = earlyPaymentDiscount
	}
	discount := terms.discount + earlyDiscount

	subtotal := basePrice.Mul(decimal.NewFromInt(int64(students)))
	discountAmount := subtotal.Mul(decimal.NewFromInt(discount)).Shift(-2)
	finalAmount := subtotal.Sub(discountAmount)

	return Quote{
		EducationLevel:       lvl,
		PaymentMode:          mode,
		StudentCount:         students,
		EarlyPayment:         early,
		BasePrice:            basePrice,
		Subtotal:             subtotal,
		PaymentModeDiscount:  terms.discount,
		EarlyPaymentDiscount: earlyDiscount,
		Discount:             discount,
		DiscountAmount:       discountAmount,
		FinalAmount:          finalAmount,
		InstallmentAmount:    finalAmount.Mul(decimal.NewFromInt(terms.multiplier)),
		PaymentFrequency:     mode,
	}, nil
}

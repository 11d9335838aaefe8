package tuition

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tundavala/escola/core"
)

func dec(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		level    EducationLevel
		mode     PaymentMode
		students int
		early    bool
		want     Quote
		wantErr  error
	}{
		{
			name: "primario mensal", level: Primario, mode: Mensal, students: 2,
			want: Quote{
				EducationLevel: Primario, PaymentMode: Mensal, StudentCount: 2,
				BasePrice: dec(25000), Subtotal: dec(50000), DiscountAmount: dec(0),
				FinalAmount: dec(50000), InstallmentAmount: dec(50000), PaymentFrequency: Mensal,
			},
		},
		{
			name: "intercambio anual early", level: Intercambio, mode: Anual, students: 1, early: true,
			want: Quote{
				EducationLevel: Intercambio, PaymentMode: Anual, StudentCount: 1, EarlyPayment: true,
				BasePrice: dec(50000), Subtotal: dec(50000),
				PaymentModeDiscount: 15, EarlyPaymentDiscount: 5, Discount: 20, DiscountAmount: dec(10000),
				FinalAmount: dec(40000), InstallmentAmount: dec(480000), PaymentFrequency: Anual,
			},
		},
		{
			name: "secundario trimestral", level: Secundario, mode: Trimestral, students: 3,
			want: Quote{
				EducationLevel: Secundario, PaymentMode: Trimestral, StudentCount: 3,
				BasePrice: dec(35000), Subtotal: dec(105000),
				PaymentModeDiscount: 5, Discount: 5, DiscountAmount: dec(5250),
				FinalAmount: dec(99750), InstallmentAmount: dec(299250), PaymentFrequency: Trimestral,
			},
		},
		{name: "unknown level", level: "universidade", mode: Mensal, students: 1, wantErr: ErrInvalidEducationLevel},
		{name: "unknown mode", level: Primario, mode: "diario", students: 1, wantErr: ErrInvalidPaymentMode},
		{name: "empty level", level: "", mode: Mensal, students: 1, wantErr: ErrInvalidEducationLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.level, tt.mode, tt.students, tt.early)
			if tt.wantErr != nil {
				var vErr *core.ValidationError
				require.True(t, errors.As(err, &vErr), "want a *core.ValidationError, got %v", err)
				assert.Equal(t, tt.wantErr, vErr.Err)
				assert.Empty(t, vErr.Fields)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.want.EducationLevel, got.EducationLevel)
			assert.Equal(t, tt.want.PaymentMode, got.PaymentMode)
			assert.Equal(t, tt.want.PaymentFrequency, got.PaymentFrequency)
			assert.Equal(t, tt.want.StudentCount, got.StudentCount)
			assert.Equal(t, tt.want.EarlyPayment, got.EarlyPayment)
			assert.Equal(t, tt.want.PaymentModeDiscount, got.PaymentModeDiscount)
			assert.Equal(t, tt.want.EarlyPaymentDiscount, got.EarlyPaymentDiscount)
			assert.Equal(t, tt.want.Discount, got.Discount)
			for name, pair := range map[string][2]decimal.Decimal{
				"basePrice":         {tt.want.BasePrice, got.BasePrice},
				"subtotal":          {tt.want.Subtotal, got.Subtotal},
				"discountAmount":    {tt.want.DiscountAmount, got.DiscountAmount},
				"finalAmount":       {tt.want.FinalAmount, got.FinalAmount},
				"installmentAmount": {tt.want.InstallmentAmount, got.InstallmentAmount},
			} {
				assert.True(t, pair[0].Equal(pair[1]), "%s = %s; want %s", name, pair[1], pair[0])
			}
		})
	}
}

func TestCalculate_studentCountBounds(t *testing.T) {
	for _, students := range []int{-1, 0, 11, 100} {
		_, err := Calculate(Primario, Mensal, students, false)

		var vErr *core.ValidationError
		if assert.True(t, errors.As(err, &vErr), "students=%d", students) {
			require.Len(t, vErr.Fields, 1)
			assert.Equal(t, "studentCount", vErr.Fields[0].Field)
		}
	}
}

// Every valid combination must satisfy the breakdown identities exactly.
func TestCalculate_breakdownIdentities(t *testing.T) {
	hundred := dec(100)
	for _, lvl := range EducationLevels {
		for _, mode := range PaymentModes {
			terms, err := mode.terms()
			require.NoError(t, err)

			for students := minStudentCount; students <= maxStudentCount; students++ {
				for _, early := range []bool{false, true} {
					q, err := Calculate(lvl, mode, students, early)
					require.NoError(t, err)

					base, _ := lvl.BasePrice()
					subtotal := base.Mul(dec(int64(students)))
					wantDiscount := terms.discount
					if early {
						wantDiscount += earlyPaymentDiscount
					}
					wantDiscountAmount := subtotal.Mul(dec(wantDiscount)).Div(hundred)
					wantInstallment := subtotal.Sub(wantDiscountAmount).Mul(dec(terms.multiplier))

					assert.Equal(t, wantDiscount, q.Discount)
					assert.True(t, q.Subtotal.Equal(subtotal))
					assert.True(t, q.DiscountAmount.Equal(wantDiscountAmount), "%s/%s/%d/%v", lvl, mode, students, early)
					assert.True(t, q.FinalAmount.Equal(q.Subtotal.Sub(q.DiscountAmount)))
					assert.True(t, q.InstallmentAmount.Equal(wantInstallment), "%s/%s/%d/%v", lvl, mode, students, early)
				}
			}
		}
	}
}

func TestQuote_MarshalJSON(t *testing.T) {
	q, err := Calculate(Intercambio, Anual, 1, true)
	require.NoError(t, err)

	data, err := json.Marshal(q)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 50000.0, got["basePrice"])
	assert.Equal(t, 20.0, got["discount"])
	assert.Equal(t, 10000.0, got["discountAmount"])
	assert.Equal(t, 40000.0, got["finalAmount"])
	assert.Equal(t, 480000.0, got["installmentAmount"])
	assert.Equal(t, "anual", got["paymentFrequency"])
}

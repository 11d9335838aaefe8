package tuition

import (
	"context"

	"github.com/pkg/errors"
)

type (
	// Repository stores calculations. It assigns ID and CreatedAt.
	Repository interface {
		CreateCalculation(ctx context.Context, calc Calculation) (Calculation, error)
		// QueryAllCalculations returns every calculation, most recent first.
		QueryAllCalculations(ctx context.Context) ([]Calculation, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Calculate prices a validated Request and records the result.
func (svc *Service) Calculate(ctx context.Context, req Request) (Quote, error) {
	q, err := Calculate(EducationLevel(req.EducationLevel), PaymentMode(req.PaymentMode), req.StudentCount, req.earlyPayment())
	if err != nil {
		return Quote{}, err
	}
	if _, err = svc.repo.CreateCalculation(ctx, newCalculation(q)); err != nil {
		return Quote{}, errors.Wrap(err, "recording calculation")
	}
	return q, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Calculation, error) {
	return svc.repo.QueryAllCalculations(ctx)
}

package inmemdb

import (
	"context"

	"github.com/tundavala/escola/core/tuition"
)

type tuitionRepository struct {
	db *table[tuition.Calculation]
}

var _ tuition.Repository = (*tuitionRepository)(nil) // interface compliance check

func NewTuitionRepository(db *DB) tuition.Repository {
	return &tuitionRepository{db: db.tuition}
}

func (repo *tuitionRepository) CreateCalculation(_ context.Context, calc tuition.Calculation) (tuition.Calculation, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	calc.ID = repo.db.newID()
	calc.CreatedAt = nowFunc()
	repo.db.insert(calc.ID, calc.CreatedAt, calc)
	return calc, nil
}

func (repo *tuitionRepository) QueryAllCalculations(context.Context) ([]tuition.Calculation, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.query(), nil
}

package calculations

import (
	"context"
	"encoding/json"
	"errors"

	"mizan-backend/internal/distribution"
	"mizan-backend/internal/domain"
	"mizan-backend/internal/engine"
	"mizan-backend/internal/pkg/money"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service persists finished calculation runs.
type Service struct {
	DB *gorm.DB
}

const defaultListLimit = 50

// Save stores one calculation result together with the allocation
// table that was current at save time. Monetary figures are rounded
// to two decimals for storage; the JSON snapshots keep full precision.
func (s *Service) Save(ctx context.Context, result engine.Result, policy engine.NisabPolicy, alloc distribution.Snapshot) (*domain.CalculationRun, error) {
	nisabJSON, err := json.Marshal(result.Nisab)
	if err != nil {
		return nil, err
	}
	breakdownJSON, err := json.Marshal(result.Breakdown)
	if err != nil {
		return nil, err
	}
	allocJSON, err := json.Marshal(alloc)
	if err != nil {
		return nil, err
	}

	run := domain.CalculationRun{
		DisplayCurrency: result.DisplayCurrency,
		NisabPolicy:     string(policy),
		TotalAssets:     money.Round2(result.TotalAssets),
		ZakatableAmount: money.Round2(result.ZakatableAmount),
		ZakatDue:        money.Round2(result.ZakatDue),
		IsEligible:      result.IsEligible,
		NisabSnapshot:   datatypes.JSON(nisabJSON),
		Breakdown:       datatypes.JSON(breakdownJSON),
		Allocation:      datatypes.JSON(allocJSON),
	}
	if err := s.DB.WithContext(ctx).Create(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// List returns the most recent runs, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]domain.CalculationRun, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}
	var runs []domain.CalculationRun
	err := s.DB.WithContext(ctx).Order("\"createdAt\" DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// Get returns one run by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.CalculationRun, error) {
	var run domain.CalculationRun
	if err := s.DB.WithContext(ctx).Where("run_id = ?", id).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("Calculation not found")
		}
		return nil, err
	}
	return &run, nil
}

// Delete removes one run by ID.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("run_id = ?", id).Delete(&domain.CalculationRun{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("Calculation not found")
	}
	return nil
}

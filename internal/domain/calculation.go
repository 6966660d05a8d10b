package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CalculationRun is a persisted zakat calculation result, including
// the full per-category breakdown and the allocation table that was
// current when the run was saved.
type CalculationRun struct {
	RunID            uuid.UUID      `gorm:"column:run_id;type:uuid;primaryKey" json:"run_id"`
	DisplayCurrency  string         `gorm:"column:display_currency;type:varchar(8);not null" json:"display_currency"`
	NisabPolicy      string         `gorm:"column:nisab_policy;type:varchar(20);not null" json:"nisab_policy"`
	TotalAssets      float64        `gorm:"column:total_assets;type:decimal(18,2);not null;default:0" json:"total_assets"`
	ZakatableAmount  float64        `gorm:"column:zakatable_amount;type:decimal(18,2);not null;default:0" json:"zakatable_amount"`
	ZakatDue         float64        `gorm:"column:zakat_due;type:decimal(18,2);not null;default:0" json:"zakat_due"`
	IsEligible       bool           `gorm:"column:is_eligible;not null;default:false" json:"is_eligible"`
	NisabSnapshot    datatypes.JSON `gorm:"column:nisab_snapshot" json:"nisab_snapshot"`
	Breakdown        datatypes.JSON `gorm:"column:breakdown" json:"breakdown"`
	Allocation       datatypes.JSON `gorm:"column:allocation" json:"allocation"`
	CreatedAt        time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt        time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
}

func (CalculationRun) TableName() string {
	return "CalculationRuns"
}

func (r *CalculationRun) BeforeCreate(tx *gorm.DB) error {
	if r.RunID == uuid.Nil {
		r.RunID = uuid.New()
	}
	return nil
}

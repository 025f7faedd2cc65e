package models

import (
	"strings"
	"time"

	"github.com/initiativelab/backend/internal/rollup"
	"github.com/initiativelab/backend/internal/types"
	"gorm.io/gorm"
)

// Portfolio is the highest level of organization; all other resources
// reference it directly or transitively.
type Portfolio struct {
	DefaultModel
	Name        string
	Note        string
	FiscalStart uint8       `gorm:"default:1"` // First month of the fiscal year, 1-12
	PeriodEnd   types.Month // End of the configured planning horizon, optional
}

func (p *Portfolio) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Note = strings.TrimSpace(p.Note)

	if p.FiscalStart == 0 {
		p.FiscalStart = 1
	}

	if p.FiscalStart > 12 {
		return ErrFiscalStartInvalid
	}

	if !p.PeriodEnd.IsZero() && !p.PeriodEnd.Valid() {
		return ErrPeriodEndInvalid
	}

	return nil
}

func (p *Portfolio) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Portfolio)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("FiscalStart") && toSave.FiscalStart > 12 {
		return ErrFiscalStartInvalid
	}

	if tx.Statement.Changed("PeriodEnd") && !toSave.PeriodEnd.IsZero() && !toSave.PeriodEnd.Valid() {
		return ErrPeriodEndInvalid
	}

	return nil
}

// FiscalStartMonth returns the fiscal year start as a time.Month.
func (p Portfolio) FiscalStartMonth() time.Month {
	if p.FiscalStart < 1 || p.FiscalStart > 12 {
		return time.January
	}

	return time.Month(p.FiscalStart)
}

// PlanPeriodEnd returns the configured planning horizon for the rollup
// engine. An unset period end yields the zero PeriodEnd, which the engine
// replaces with its rolling default window.
func (p Portfolio) PlanPeriodEnd() rollup.PeriodEnd {
	if p.PeriodEnd.IsZero() {
		return rollup.PeriodEnd{}
	}

	return rollup.PeriodEnd{Month: int(p.PeriodEnd.Month), Year: p.PeriodEnd.Year}
}

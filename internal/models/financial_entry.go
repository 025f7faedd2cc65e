package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/initiativelab/backend/internal/rollup"
	"github.com/initiativelab/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinancialEntry is one ledger line of an initiative: a financial kind
// within a stage, with its monthly amounts.
type FinancialEntry struct {
	DefaultModel
	InitiativeID uuid.UUID
	Initiative   Initiative `json:"-"`
	Stage        rollup.Stage
	Kind         rollup.Kind
	Note         string
	Amounts      []FinancialAmount `gorm:"foreignKey:EntryID"`
}

func (e *FinancialEntry) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*FinancialEntry)
	return e.checkIntegrity(tx, *toSave)
}

func (e *FinancialEntry) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(FinancialEntry)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Stage") && !StageValid(toSave.Stage) {
		return ErrStageInvalid
	}

	if tx.Statement.Changed("Kind") && !toSave.Kind.Valid() {
		return ErrKindInvalid
	}

	if tx.Statement.Changed("InitiativeID") {
		err := e.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

func (e *FinancialEntry) checkIntegrity(tx *gorm.DB, toSave FinancialEntry) error {
	return tx.First(&Initiative{}, toSave.InitiativeID).Error
}

func (e *FinancialEntry) BeforeSave(_ *gorm.DB) error {
	e.Note = strings.TrimSpace(e.Note)

	if !StageValid(e.Stage) {
		return ErrStageInvalid
	}

	if !e.Kind.Valid() {
		return ErrKindInvalid
	}

	seen := make(map[types.Month]struct{}, len(e.Amounts))
	for _, amount := range e.Amounts {
		if _, ok := seen[amount.Month]; ok {
			return ErrAmountMonthNotUnique
		}
		seen[amount.Month] = struct{}{}
	}

	return nil
}

// FinancialAmount is one month bucket of a financial entry: the planned
// amount and, once recorded, the actual. A NULL actual means "not yet
// recorded", which is different from an actual of zero.
type FinancialAmount struct {
	Timestamps
	EntryID uuid.UUID           `gorm:"primaryKey"`
	Month   types.Month         `gorm:"primaryKey"`
	Planned decimal.Decimal     `gorm:"type:DECIMAL(20,8)"`
	Actual  decimal.NullDecimal `gorm:"type:DECIMAL(20,8)"`
}

func (a *FinancialAmount) BeforeSave(_ *gorm.DB) error {
	if !a.Month.Valid() {
		return ErrAmountMonthInvalid
	}

	return nil
}

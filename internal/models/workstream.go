package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workstream groups initiatives within a portfolio.
type Workstream struct {
	DefaultModel
	PortfolioID uuid.UUID `gorm:"uniqueIndex:workstream_name_portfolio"`
	Portfolio   Portfolio `json:"-"`
	Name        string    `gorm:"uniqueIndex:workstream_name_portfolio"`
	Note        string
	Archived    bool
}

func (w *Workstream) BeforeCreate(tx *gorm.DB) error {
	_ = w.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Workstream)
	return w.checkIntegrity(tx, *toSave)
}

func (w *Workstream) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Workstream)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("PortfolioID") {
		err := w.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that the portfolio the workstream references
// exists.
func (w *Workstream) checkIntegrity(tx *gorm.DB, toSave Workstream) error {
	return tx.First(&Portfolio{}, toSave.PortfolioID).Error
}

func (w *Workstream) BeforeSave(_ *gorm.DB) error {
	w.Name = strings.TrimSpace(w.Name)
	w.Note = strings.TrimSpace(w.Note)

	return nil
}

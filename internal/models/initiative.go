package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/initiativelab/backend/internal/rollup"
	"gorm.io/gorm"
)

// Stage keys of the governance lifecycle, in gate order. Only the
// financial lines of an initiative's current stage participate in
// stage-filtered rollups.
const (
	StageIdea      rollup.Stage = "idea"
	StageDraft     rollup.Stage = "draft"
	StageApproved  rollup.Stage = "approved"
	StageExecuting rollup.Stage = "executing"
	StageRealized  rollup.Stage = "realized"
)

// Stages returns all governance stages in gate order.
func Stages() []rollup.Stage {
	return []rollup.Stage{StageIdea, StageDraft, StageApproved, StageExecuting, StageRealized}
}

// StageValid reports whether the stage is part of the governance
// lifecycle.
func StageValid(stage rollup.Stage) bool {
	for _, s := range Stages() {
		if s == stage {
			return true
		}
	}

	return false
}

// Initiative is one transformation initiative within a portfolio.
type Initiative struct {
	DefaultModel
	PortfolioID  uuid.UUID
	Portfolio    Portfolio `json:"-"`
	WorkstreamID *uuid.UUID
	Workstream   *Workstream `json:"-"`
	Name         string
	Note         string
	ActiveStage  rollup.Stage
	Archived     bool
}

func (i *Initiative) BeforeCreate(tx *gorm.DB) error {
	_ = i.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Initiative)
	return i.checkIntegrity(tx, *toSave)
}

func (i *Initiative) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Initiative)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("ActiveStage") && !StageValid(toSave.ActiveStage) {
		return ErrStageInvalid
	}

	if tx.Statement.Changed("PortfolioID") || tx.Statement.Changed("WorkstreamID") {
		// Fields not part of the update keep their current values
		if toSave.PortfolioID == uuid.Nil {
			toSave.PortfolioID = i.PortfolioID
		}
		if toSave.WorkstreamID == nil {
			toSave.WorkstreamID = i.WorkstreamID
		}

		err := i.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that the portfolio exists and that the
// workstream, if one is set, belongs to the same portfolio.
func (i *Initiative) checkIntegrity(tx *gorm.DB, toSave Initiative) error {
	err := tx.First(&Portfolio{}, toSave.PortfolioID).Error
	if err != nil {
		return err
	}

	if toSave.WorkstreamID == nil {
		return nil
	}

	var workstream Workstream
	err = tx.First(&workstream, *toSave.WorkstreamID).Error
	if err != nil {
		return err
	}

	if workstream.PortfolioID != toSave.PortfolioID {
		return ErrWorkstreamPortfolioMixed
	}

	return nil
}

func (i *Initiative) BeforeSave(_ *gorm.DB) error {
	i.Name = strings.TrimSpace(i.Name)
	i.Note = strings.TrimSpace(i.Note)

	if i.ActiveStage == "" {
		i.ActiveStage = StageIdea
	}

	if !StageValid(i.ActiveStage) {
		return ErrStageInvalid
	}

	return nil
}

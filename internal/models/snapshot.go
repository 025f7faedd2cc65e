package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DashboardSnapshot is one persisted rendering of a portfolio's dashboard
// read model, captured by the snapshot scheduler for trend history.
type DashboardSnapshot struct {
	DefaultModel
	PortfolioID uuid.UUID
	Portfolio   Portfolio `json:"-"`
	CapturedAt  time.Time
	Payload     []byte
}

func (s *DashboardSnapshot) BeforeSave(_ *gorm.DB) error {
	if len(s.Payload) == 0 {
		return ErrSnapshotPayloadEmpty
	}

	return nil
}

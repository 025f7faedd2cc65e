package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Portfolio errors
var (
	ErrFiscalStartInvalid = errors.New("the fiscal year start must be a month between 1 and 12")
	ErrPeriodEndInvalid   = errors.New("the plan period end must be a valid month")
)

// Workstream errors
var ErrWorkstreamNameNotUnique = errors.New("the workstream name is already in use in this portfolio")

// Initiative errors
var (
	ErrStageInvalid             = errors.New("the specified stage is not a valid stage")
	ErrWorkstreamPortfolioMixed = errors.New("the workstream must belong to the same portfolio as the initiative")
)

// Financial entry errors
var (
	ErrKindInvalid          = errors.New("the specified financial kind is invalid")
	ErrAmountMonthNotUnique = errors.New("you can not create multiple amounts for the same entry and month")
	ErrAmountMonthInvalid   = errors.New("financial amounts need a valid month")
)

// Snapshot errors
var ErrSnapshotPayloadEmpty = errors.New("dashboard snapshots need a payload")

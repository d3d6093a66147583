package domain

import "errors"

var (
	// ErrModelNotLoaded means a recommend operation ran before any trained
	// snapshot was published. Retryable once training completes.
	ErrModelNotLoaded = errors.New("recommendation model not loaded")

	// ErrEmptyTrainingSet means training was attempted with zero usable
	// booking records.
	ErrEmptyTrainingSet = errors.New("training set is empty")
)

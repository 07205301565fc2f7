package usecase

import "time"

const (
	PickKindUser      = "user"
	PickKindOtherTeam = "other_team"
	PickKindAuto      = "auto"

	ExplanationOutcomeOK       = "ok"
	ExplanationOutcomeFallback = "fallback"
	ExplanationOutcomeDropped  = "dropped"
	ExplanationOutcomeStale    = "stale"
)

// DraftRecorder receives draft engine counters. Implementations must be safe
// for concurrent use.
type DraftRecorder interface {
	RecordDraftStarted()
	RecordDraftCompleted()
	RecordPick(kind string, matched bool)
	RecordExplanation(outcome string, duration time.Duration)
}

type noopDraftRecorder struct{}

func (noopDraftRecorder) RecordDraftStarted() {}

func (noopDraftRecorder) RecordDraftCompleted() {}

func (noopDraftRecorder) RecordPick(string, bool) {}

func (noopDraftRecorder) RecordExplanation(string, time.Duration) {}

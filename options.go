package pulse

type effectConfig struct {
	name        string
	allowWrites bool
	scheduler   Scheduler
}

// EffectOption configures an effect at creation time.
type EffectOption func(*effectConfig)

// AllowWrites permits the effect to write signals during its run. Effects
// without it panic with ErrInvalidWrite on any write. Feedback loops built
// this way are the caller's responsibility.
func AllowWrites() EffectOption {
	return func(cfg *effectConfig) { cfg.allowWrites = true }
}

// WithScheduler routes the effect's re-runs through s instead of running
// them immediately. The scheduler must eventually call Run on the effect it
// was handed.
func WithScheduler(s Scheduler) EffectOption {
	return func(cfg *effectConfig) { cfg.scheduler = s }
}

// WithEffectName sets a diagnostic label used by instrumentation events and
// WriteDOT.
func WithEffectName(name string) EffectOption {
	return func(cfg *effectConfig) { cfg.name = name }
}

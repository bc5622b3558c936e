package contentsync

import "time"

// Config configures the background sync jobs. An empty schedule disables
// the corresponding job.
type Config struct {
	Watch                bool          `env:"SYNC_WATCH" envDefault:"true"`
	Debounce             time.Duration `env:"SYNC_DEBOUNCE" envDefault:"500ms"`
	DriftSchedule        string        `env:"SYNC_DRIFT_SCHEDULE" envDefault:"*/5 * * * *"`
	FullSchedule         string        `env:"SYNC_FULL_SCHEDULE" envDefault:"30 3 * * *"`
	SessionSweepSchedule string        `env:"SYNC_SESSION_SWEEP_SCHEDULE" envDefault:"*/10 * * * *"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		Watch:                true,
		Debounce:             500 * time.Millisecond,
		DriftSchedule:        "*/5 * * * *",
		FullSchedule:         "30 3 * * *",
		SessionSweepSchedule: "*/10 * * * *",
	}
}

package contentsync

import "errors"

var (
	ErrInvalidSchedule = errors.New("contentsync: invalid cron schedule")
	ErrAlreadyRunning  = errors.New("contentsync: already running")
	ErrWatchDir        = errors.New("contentsync: cannot watch data directory")
)

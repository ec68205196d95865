package submission

import (
	log "github.com/golang/glog"
)

// Notifier surfaces submission progress to the user
type Notifier interface {
	Loading(msg string)
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to the log
type LogNotifier struct{}

// Loading logs a progress message
func (l *LogNotifier) Loading(msg string) {
	log.Infof("%v", msg)
}

// Success logs a success message
func (l *LogNotifier) Success(msg string) {
	log.Infof("%v", msg)
}

// Error logs a user facing error
func (l *LogNotifier) Error(msg string) {
	log.Errorf("%v", msg)
}

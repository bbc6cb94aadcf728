package indicator

import "github.com/sirupsen/logrus"

// Indicator reflects "calibration in progress" to the operator.
type Indicator interface {
	Set(on bool) error
	Close() error
}

// LogIndicator logs indicator transitions; the fallback when no GPIO
// pin is configured.
type LogIndicator struct {
	on bool
}

func NewLog() *LogIndicator { return &LogIndicator{} }

func (l *LogIndicator) Set(on bool) error {
	if on == l.on {
		return nil
	}
	l.on = on
	if on {
		logrus.Info("calibration indicator on")
	} else {
		logrus.Info("calibration indicator off")
	}
	return nil
}

func (l *LogIndicator) Close() error { return nil }

package progress

import (
	"github.com/sirupsen/logrus"
)

// Analyzer is the entry point of the progress engine. It holds no state
// besides its logger, so one instance can serve concurrent requests; every
// method is a pure function of its arguments.
type Analyzer struct {
	log logrus.FieldLogger
}

// NewAnalyzer returns an Analyzer logging through logger, or through the
// logrus standard logger when logger is nil.
func NewAnalyzer(logger logrus.FieldLogger) *Analyzer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Analyzer{
		log: logger.WithField("component", "progress"),
	}
}

// NormalizeMass converts value to pounds, logging when the unit tag had to
// be assumed.
func (a *Analyzer) NormalizeMass(value float64, tag *string, field string) float64 {
	lbs, recognized := ToPounds(value, tag)
	if !recognized {
		raw := "<nil>"
		if tag != nil {
			raw = *tag
		}
		a.log.WithFields(logrus.Fields{
			"field": field,
			"unit":  raw,
		}).Warn("unrecognized mass unit, assuming pounds")
	}
	return lbs
}

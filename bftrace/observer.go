// Package bftrace gives driver.Analyze somewhere to report what it's
// doing without forcing every caller to care. Observer generalizes a
// DEBUG-constant-and-log.Printf style of diagnostics into an interface so
// a caller running thousands of analyses can wire in structured, leveled
// logging instead, or nothing at all.
package bftrace

import "github.com/sirupsen/logrus"

// Observer receives a callback for every loop-lifecycle event the
// interpreter raises and for the final verdict. All methods must be safe
// to call with a nil receiver's zero value never reaching them; driver
// code checks for a nil Observer itself and skips the calls entirely.
type Observer interface {
	LoopEntered(loopID int, step uint64)
	LoopBackEdge(loopID int, step uint64)
	LoopBroken(loopID int, step uint64)
	LoopSkipped(loopID int, step uint64)
	Verdict(summary string, step uint64)
}

// LogrusObserver reports every event as a structured debug-level log
// entry carrying the loop id and step count, and the final verdict at
// info level.
type LogrusObserver struct {
	Log *logrus.Logger
}

// NewLogrusObserver returns a LogrusObserver writing through log, or
// through logrus.StandardLogger() if log is nil.
func NewLogrusObserver(log *logrus.Logger) *LogrusObserver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogrusObserver{Log: log}
}

func (o *LogrusObserver) fields(loopID int, step uint64) logrus.Fields {
	return logrus.Fields{"loop_id": loopID, "step": step}
}

func (o *LogrusObserver) LoopEntered(loopID int, step uint64) {
	o.Log.WithFields(o.fields(loopID, step)).Debug("loop entered")
}

func (o *LogrusObserver) LoopBackEdge(loopID int, step uint64) {
	o.Log.WithFields(o.fields(loopID, step)).Debug("loop back-edge")
}

func (o *LogrusObserver) LoopBroken(loopID int, step uint64) {
	o.Log.WithFields(o.fields(loopID, step)).Debug("loop broken")
}

func (o *LogrusObserver) LoopSkipped(loopID int, step uint64) {
	o.Log.WithFields(o.fields(loopID, step)).Debug("loop skipped")
}

func (o *LogrusObserver) Verdict(summary string, step uint64) {
	o.Log.WithField("step", step).Info(summary)
}

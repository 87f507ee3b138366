package monitoring

import "log"

// Logf is the package-level diagnostic logger used for voxel-grid anomaly
// conditions that do not warrant an error return. Its one caller today is
// the voxel grid's sensor-model indexing, which logs when the model has no
// rows. It defaults to log.Printf but may be replaced by SetLogger; tests
// mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil mutes it entirely,
// useful in tests that exercise edge cases expected to log.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

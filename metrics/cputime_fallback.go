//go:build windows || js
// +build windows js

package metrics

// getProcessCPUTime is unsupported on this platform; the registry's
// process.cputime gauge simply reads zero here rather than failing.
func getProcessCPUTime() int64 { return 0 }

//go:build !debug
// +build !debug

package photonmap

func DebugLog(format string, args ...interface{}) {}

func DebugLogOnce(format string, args ...interface{}) {}

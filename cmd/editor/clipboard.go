package main

import (
	"github.com/milk9111/tankgame/logger"
	"golang.design/x/clipboard"
)

// systemClipboard returns a text writer for the OS clipboard, or nil when
// the platform has none (headless X, missing libraries).
func systemClipboard() func(string) {
	if err := clipboard.Init(); err != nil {
		logger.Log.WithError(err).Warn("clipboard unavailable")
		return nil
	}
	return func(s string) {
		clipboard.Write(clipboard.FmtText, []byte(s))
	}
}

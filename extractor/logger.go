package main

import "log/slog"

// Logger sends informative messages and errors to different handlers.
type Logger struct {
	InfoLog  *slog.Logger
	ErrorLog *slog.Logger
}

const moduleKey = "module"

func (l Logger) Info(message string, module string) {
	l.InfoLog.Info(message, moduleKey, module)
}

func (l Logger) Error(message string) {
	l.ErrorLog.Error(message)
}

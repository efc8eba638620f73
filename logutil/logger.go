// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

// ComponentLogger adds fixed attributes to every record.
// Records go to whatever logger is current when they are written, so a
// provider built before SetupLogger still honors the final configuration.
type ComponentLogger struct {
	attrs []any
}

// NewLogger creates a logger tagged with component.
func NewLogger(component string) *ComponentLogger {
	return &ComponentLogger{attrs: []any{"component", component}}
}

// WithProvider tags records with the environment provider name.
func (l *ComponentLogger) WithProvider(name string) *ComponentLogger {
	return l.with("provider", name)
}

// WithOperation tags records with the operation being performed.
func (l *ComponentLogger) WithOperation(name string) *ComponentLogger {
	return l.with("operation", name)
}

func (l *ComponentLogger) with(key, value string) *ComponentLogger {
	attrs := make([]any, 0, len(l.attrs)+2)
	attrs = append(attrs, l.attrs...)
	return &ComponentLogger{attrs: append(attrs, key, value)}
}

// Debug logs a debug record.
func (l *ComponentLogger) Debug(msg string, args ...any) {
	Logger().With(l.attrs...).Debug(msg, args...)
}

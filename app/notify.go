package app

import "github.com/rs/zerolog"

// LogNotifier writes notifications to a logger. It serves callers
// without a user in front of them, such as the HTTP server.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Notify(level Level, message string) {
	var e *zerolog.Event
	switch level {
	case LevelError:
		e = n.Log.Error()
	case LevelWarning:
		e = n.Log.Warn()
	default:
		e = n.Log.Info()
	}
	e.Str("notice", level.String()).Msg(message)
}

// DeclineDialog answers no to every question.
type DeclineDialog struct{}

func (DeclineDialog) Confirm(string) bool { return false }
func (DeclineDialog) PromptText(string) (string, bool) { return "", false }

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Songmu/prompter"

	"github.com/stsysd/folio/app"
)

// terminalNotifier prints notifications as one line each.
type terminalNotifier struct {
	w io.Writer
}

func (n *terminalNotifier) Notify(level app.Level, message string) {
	fmt.Fprintf(n.w, "[%s] %s\n", level, message)
}

// terminalDialog asks on the controlling terminal. Without a terminal
// every confirmation is declined unless yes is set.
type terminalDialog struct {
	yes bool
}

func (d *terminalDialog) Confirm(message string) bool {
	if d.yes {
		return true
	}
	return prompter.YN(message, false)
}

func (d *terminalDialog) PromptText(message string) (string, bool) {
	v := strings.TrimSpace(prompter.Password(message))
	return v, v != ""
}

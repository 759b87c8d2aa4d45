package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

type osascriptNotifier struct {
	appName string
}

// New returns a notifier that shells out to osascript.
func New(appName string) Notifier {
	return &osascriptNotifier{appName: appName}
}

func (n *osascriptNotifier) Notify(title, body string) error {
	script := fmt.Sprintf("display notification %q with title %q",
		sanitize(body), sanitize(title))
	return exec.Command("osascript", "-e", script).Run()
}

// sanitize keeps quotes out of the AppleScript literal.
func sanitize(s string) string {
	return strings.NewReplacer(`"`, "'", "\\", "").Replace(s)
}

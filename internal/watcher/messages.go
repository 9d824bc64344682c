package watcher

import (
	"errors"
	"fmt"

	"github.com/aleister1102/urlwatch/internal/common"
	"github.com/aleister1102/urlwatch/internal/differ"
)

const (
	MessageStartup = "Watching"
	MessageChanged = "Site changed"
	MessageExiting = "Watcher exiting."
)

func changedMessage(title string, summary *differ.Summary) string {
	msg := MessageChanged
	if title != "" {
		msg += ": " + title
	}
	if summary != nil {
		msg += "\n" + summary.String()
	}
	return msg
}

func errorMessage(err error) string {
	var httpErr *common.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("Got HTTP error %d. Continuing.", httpErr.StatusCode)
	}
	return fmt.Sprintf("Fetch failed: %v. Continuing.", err)
}

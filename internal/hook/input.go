package hook

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/wahlandcase/tickethook/internal/models"
)

// ReadPushEvents reads "<old> <new> <ref>" lines as git feeds them to post-receive.
// Blank lines are ignored; malformed lines are logged and skipped.
func ReadPushEvents(r io.Reader, logger *logrus.Logger) ([]models.PushEvent, error) {
	var events []models.PushEvent

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}

		event, ok := models.ParsePushEvent(line)
		if !ok {
			logger.WithFields(logrus.Fields{
				"line":  lineNo,
				"input": line,
			}).Warn("Skipping malformed ref update")
			continue
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("reading ref updates: %w", err)
	}

	return events, nil
}

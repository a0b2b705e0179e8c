package git

import (
	"regexp"

	"github.com/samber/lo"
)

// ExtractTickets extracts ticket IDs from text using the given compiled regex.
// Matches are returned in order of appearance; repeats are kept unless dedupe is set.
func ExtractTickets(text string, ticketRegex *regexp.Regexp, dedupe bool) []string {
	if ticketRegex == nil {
		return nil
	}

	matches := ticketRegex.FindAllStringSubmatch(text, -1)

	tickets := lo.Map(matches, func(match []string, _ int) string {
		if len(match) > 1 {
			return match[1]
		}
		return match[0]
	})

	if dedupe {
		return lo.Uniq(tickets)
	}
	return tickets
}

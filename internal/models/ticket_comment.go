package models

// TicketComment is the formatted comment for one commit.
// The same comment is sent to every ticket referenced by the commit.
type TicketComment struct {
	// RefName is the branch the commit was pushed to
	RefName string
	// SHA is the commit the comment describes
	SHA string
	// Text is the rendered multi-line comment body
	Text string
}

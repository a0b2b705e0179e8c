package hook

import (
	"context"

	"github.com/wahlandcase/tickethook/internal/models"
)

// DryRunNotifier stands in for a real notifier and records what would have been posted
type DryRunNotifier struct {
	name string
}

// NewDryRunNotifier creates a stand-in for the notifier called name
func NewDryRunNotifier(name string) *DryRunNotifier {
	return &DryRunNotifier{name: name}
}

// Name implements Notifier
func (n *DryRunNotifier) Name() string {
	return n.name
}

// Notify implements Notifier without any network I/O
func (n *DryRunNotifier) Notify(_ context.Context, ticketID string, comment models.TicketComment) models.Delivery {
	return models.NewDelivery(n.name, ticketID, comment.SHA, models.Skipped("dry run"))
}

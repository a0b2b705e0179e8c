// Package hook implements the post-receive pass: for every pushed commit on the tracked
// branch, post its comment to each ticket the message references.
package hook

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/wahlandcase/tickethook/internal/git"
	"github.com/wahlandcase/tickethook/internal/models"
)

// Notifier delivers a commit comment for one ticket. Implementations never fail the push:
// every outcome is reported through the returned Delivery.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, ticketID string, comment models.TicketComment) models.Delivery
}

// CommentBuilder renders the comment for a commit and lists the tickets it references
type CommentBuilder interface {
	Build(ctx context.Context, sha, refName string) (models.TicketComment, []string, error)
}

// Report summarises one run
type Report struct {
	// RefsProcessed counts pushed refs that matched the tracked branch
	RefsProcessed int
	// CommitsProcessed counts commits a comment was built for
	CommitsProcessed int
	// Deliveries lists every notifier call in the order it was made
	Deliveries []models.Delivery
}

// Processor runs the branch -> commit -> ticket loop
type Processor struct {
	backend       git.Backend
	builder       CommentBuilder
	notifiers     []Notifier
	trackedBranch string
	logger        *logrus.Logger
}

// NewProcessor creates a Processor. Notifiers are called in the order given.
func NewProcessor(backend git.Backend, builder CommentBuilder, trackedBranch string, logger *logrus.Logger, notifiers ...Notifier) *Processor {
	return &Processor{
		backend:       backend,
		builder:       builder,
		notifiers:     notifiers,
		trackedBranch: trackedBranch,
		logger:        logger,
	}
}

// Process handles every event sequentially. Errors are logged and the affected ref or commit
// is skipped; nothing aborts the run.
func (p *Processor) Process(ctx context.Context, events []models.PushEvent) Report {
	var report Report

	for _, event := range events {
		if event.RefName != p.trackedBranch {
			p.logger.WithField("ref", event.RefName).Debug("Ignoring untracked ref")
			continue
		}
		report.RefsProcessed++
		p.processRef(ctx, event, &report)
	}

	return report
}

func (p *Processor) processRef(ctx context.Context, event models.PushEvent, report *Report) {
	rng := git.ResolveRange(event.OldRev, event.NewRev)
	logger := p.logger.WithFields(logrus.Fields{
		"ref":   event.RefName,
		"kind":  rng.Kind.String(),
		"range": rng.String(),
	})

	if rng.IsEmpty() {
		logger.Debug("Ref deleted, nothing to do")
		return
	}

	shas, err := git.Walk(ctx, p.backend, rng)
	if err != nil {
		logger.WithError(err).Warn("Failed to list pushed commits")
		return
	}
	logger.WithField("commits", len(shas)).Debug("Walking pushed commits")

	for _, sha := range shas {
		if ctx.Err() != nil {
			logger.WithError(ctx.Err()).Warn("Stopping early")
			return
		}
		p.processCommit(ctx, event.RefName, sha, report)
	}
}

func (p *Processor) processCommit(ctx context.Context, refName, sha string, report *Report) {
	logger := p.logger.WithFields(logrus.Fields{
		"ref": refName,
		"sha": sha,
	})

	comment, tickets, err := p.builder.Build(ctx, sha, refName)
	if err != nil {
		logger.WithError(err).Warn("Failed to build comment")
		return
	}
	report.CommitsProcessed++

	if len(tickets) == 0 {
		logger.Debug("No tickets referenced")
		return
	}

	for _, ticketID := range tickets {
		for _, notifier := range p.notifiers {
			delivery := notifier.Notify(ctx, ticketID, comment)
			report.Deliveries = append(report.Deliveries, delivery)
			p.logDelivery(logger, delivery)
		}
	}
}

func (p *Processor) logDelivery(logger *logrus.Entry, d models.Delivery) {
	entry := logger.WithFields(logrus.Fields{
		"notifier": d.Notifier,
		"ticket":   d.TicketID,
	})

	switch {
	case models.IsStatusDelivered(d.Status):
		entry.Info("posted")
	case models.IsStatusSkipped(d.Status):
		entry.WithField("reason", models.GetStatusReason(d.Status)).Info("skipped")
	default:
		entry.WithField("reason", models.GetStatusReason(d.Status)).Warn("post failed")
	}
}

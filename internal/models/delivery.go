package models

// DeliveryStatus represents the outcome of a single best-effort notification
type DeliveryStatus interface {
	isDeliveryStatus()
}

type deliveryStatusDelivered struct{}
type deliveryStatusSkipped struct{ Reason string }
type deliveryStatusFailed struct{ Error string }

func (deliveryStatusDelivered) isDeliveryStatus() {}
func (deliveryStatusSkipped) isDeliveryStatus()   {}
func (deliveryStatusFailed) isDeliveryStatus()    {}

// Delivered indicates the destination accepted the notification
var Delivered DeliveryStatus = deliveryStatusDelivered{}

// Skipped creates a DeliveryStatus for a notification that was not attempted
func Skipped(reason string) DeliveryStatus {
	return deliveryStatusSkipped{Reason: reason}
}

// Failed creates a DeliveryStatus for an attempted notification that did not go through
func Failed(err string) DeliveryStatus {
	return deliveryStatusFailed{Error: err}
}

// Delivery records one notifier call for one ticket
type Delivery struct {
	// Notifier is the name of the destination ("tracker", "chat")
	Notifier string
	// TicketID is the ticket the comment was addressed to
	TicketID string
	// SHA is the commit the comment describes
	SHA string
	// Status of the call
	Status DeliveryStatus
}

// NewDelivery creates a new Delivery
func NewDelivery(notifier, ticketID, sha string, status DeliveryStatus) Delivery {
	return Delivery{
		Notifier: notifier,
		TicketID: ticketID,
		SHA:      sha,
		Status:   status,
	}
}

// IsStatusDelivered returns true if status is Delivered
func IsStatusDelivered(s DeliveryStatus) bool {
	_, ok := s.(deliveryStatusDelivered)
	return ok
}

// IsStatusSkipped returns true if status is Skipped
func IsStatusSkipped(s DeliveryStatus) bool {
	_, ok := s.(deliveryStatusSkipped)
	return ok
}

// IsStatusFailed returns true if status is Failed
func IsStatusFailed(s DeliveryStatus) bool {
	_, ok := s.(deliveryStatusFailed)
	return ok
}

// GetStatusReason returns the reason string for Skipped or Failed statuses
func GetStatusReason(s DeliveryStatus) string {
	if skipped, ok := s.(deliveryStatusSkipped); ok {
		return skipped.Reason
	}
	if failed, ok := s.(deliveryStatusFailed); ok {
		return failed.Error
	}
	return ""
}

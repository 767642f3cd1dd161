package delivery

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// RecentWindow is how long a tracking snapshot stays fresh.
const RecentWindow = 60 * time.Second

// TrackingUpdate is a read-only view of a delivery computed at a given
// instant. It is never persisted.
type TrackingUpdate struct {
	deliveryID       kernel.UUID
	courierID        kernel.UUID
	status           Status
	location         kernel.Location
	estimatedArrival time.Time
	timeToArrival    time.Duration
	progress         float64
	overdue          bool
	message          string
	takenAt          time.Time
}

// NewTrackingUpdate derives a snapshot of d as seen at now.
func NewTrackingUpdate(d *Delivery, now time.Time) TrackingUpdate {
	return TrackingUpdate{
		deliveryID:       d.ID(),
		courierID:        d.CourierID(),
		status:           d.Status(),
		location:         d.CurrentLocation(),
		estimatedArrival: d.EstimatedArrival(),
		timeToArrival:    d.TimeToArrival(now),
		progress:         d.Progress(),
		overdue:          d.IsOverdue(now),
		message:          d.Status().Message(),
		takenAt:          now,
	}
}

func (u TrackingUpdate) DeliveryID() kernel.UUID {
	return u.deliveryID
}

func (u TrackingUpdate) CourierID() kernel.UUID {
	return u.courierID
}

func (u TrackingUpdate) Status() Status {
	return u.status
}

func (u TrackingUpdate) Location() kernel.Location {
	return u.location
}

func (u TrackingUpdate) EstimatedArrival() time.Time {
	return u.estimatedArrival
}

func (u TrackingUpdate) TimeToArrival() time.Duration {
	return u.timeToArrival
}

func (u TrackingUpdate) Progress() float64 {
	return u.progress
}

func (u TrackingUpdate) IsOverdue() bool {
	return u.overdue
}

func (u TrackingUpdate) StatusMessage() string {
	return u.message
}

func (u TrackingUpdate) TakenAt() time.Time {
	return u.takenAt
}

// IsRecent reports whether the snapshot is at most RecentWindow old.
func (u TrackingUpdate) IsRecent(now time.Time) bool {
	return now.Sub(u.takenAt) <= RecentWindow
}

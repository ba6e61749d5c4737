package domain

import (
	"context"
	"time"
)

// Meetup is the aggregate event record. MeetingID is supplied by the client on create
// and is unique across the collection.
// swagger:model Meetup
type Meetup struct {
	MeetingID   string     `json:"meetingId" bson:"meetingId" validate:"required"`
	Title       string     `json:"title" bson:"title" validate:"required"`
	Image       string     `json:"image" bson:"image"`
	Address     string     `json:"address" bson:"address"`
	Description string     `json:"description" bson:"description"`
	EventDate   *time.Time `json:"eventDate,omitempty" bson:"eventDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	Ratings     []Rating   `json:"ratings" bson:"ratings"`
	Reviews     []Review   `json:"reviews" bson:"reviews"`
	RSVPs       []RSVP     `json:"rsvps" bson:"rsvps"`
}

// NewMeetup returns a Meetup with empty nested collections and the given creation time.
func NewMeetup(meetingID, title, image, address, description string, eventDate *time.Time, createdAt time.Time) *Meetup {
	return &Meetup{
		MeetingID:   meetingID,
		Title:       title,
		Image:       image,
		Address:     address,
		Description: description,
		EventDate:   eventDate,
		CreatedAt:   createdAt,
		Ratings:     []Rating{},
		Reviews:     []Review{},
		RSVPs:       []RSVP{},
	}
}

// Normalize replaces nil nested collections with empty ones so they encode as [] rather than null.
func (m *Meetup) Normalize() *Meetup {
	if m.Ratings == nil {
		m.Ratings = []Rating{}
	}
	if m.Reviews == nil {
		m.Reviews = []Review{}
	}
	if m.RSVPs == nil {
		m.RSVPs = []RSVP{}
	}
	return m
}

// Clone returns a deep copy of the meetup.
func (m *Meetup) Clone() *Meetup {
	c := *m
	if m.EventDate != nil {
		d := *m.EventDate
		c.EventDate = &d
	}
	c.Ratings = append([]Rating{}, m.Ratings...)
	c.Reviews = append([]Review{}, m.Reviews...)
	c.RSVPs = append([]RSVP{}, m.RSVPs...)
	return &c
}

// Rating is one user's star rating. At most one per user per meetup.
// swagger:model Rating
type Rating struct {
	UserID    string    `json:"userId" bson:"userId" validate:"required"`
	Rating    int       `json:"rating" bson:"rating" validate:"min=1,max=5"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Review is a free-text review. A user may post any number of them.
// swagger:model Review
type Review struct {
	UserID    string    `json:"userId" bson:"userId"`
	UserName  string    `json:"userName" bson:"userName" validate:"required"`
	Comment   string    `json:"comment" bson:"comment" validate:"required"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// RSVP is an attendance reservation. At most one per user per meetup.
// swagger:model RSVP
type RSVP struct {
	UserID    string    `json:"userId" bson:"userId" validate:"required"`
	UserName  string    `json:"userName" bson:"userName" validate:"required"`
	Email     string    `json:"email" bson:"email" validate:"required"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// MeetupPatch holds the fields an update may change. Nil fields are left untouched.
type MeetupPatch struct {
	Title       *string
	Image       *string
	Address     *string
	Description *string
	EventDate   *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p MeetupPatch) IsEmpty() bool {
	return p.Title == nil && p.Image == nil && p.Address == nil && p.Description == nil && p.EventDate == nil
}

// Apply merges the patch into m.
func (p MeetupPatch) Apply(m *Meetup) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Image != nil {
		m.Image = *p.Image
	}
	if p.Address != nil {
		m.Address = *p.Address
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.EventDate != nil {
		d := *p.EventDate
		m.EventDate = &d
	}
}

// RSVPAppendResult is returned by MeetupRepository.AppendRSVPIfAbsent.
// Meetup is nil when the meetup does not exist; Added is false with a non-nil Meetup
// when the user already has an RSVP.
type RSVPAppendResult struct {
	Added  bool
	Meetup *Meetup
}

// MeetupRepository defines the interface for meetup storage. Every method touches a single
// meetup document; the rating and RSVP mutators check and mutate atomically.
type MeetupRepository interface {
	FindAll(ctx context.Context) ([]*Meetup, error)
	FindByMeetingID(ctx context.Context, meetingID string) (*Meetup, error)
	Insert(ctx context.Context, meetup *Meetup) error
	Update(ctx context.Context, meetingID string, patch MeetupPatch) (*Meetup, error)
	Delete(ctx context.Context, meetingID string) (int64, error)
	UpsertRating(ctx context.Context, meetingID string, rating Rating) (*Meetup, error)
	AppendReview(ctx context.Context, meetingID string, review Review) (*Meetup, error)
	AppendRSVPIfAbsent(ctx context.Context, meetingID string, rsvp RSVP) (RSVPAppendResult, error)
	RemoveRSVP(ctx context.Context, meetingID, userID string) (*Meetup, error)
}

// HealthChecker is implemented by stores that can report reachability.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// MeetupService defines the client-facing meetup operations. Failures are reported inside the
// returned envelopes rather than as errors, except ListAll which returns an empty list and the error.
type MeetupService interface {
	ListAll(ctx context.Context) ([]*Meetup, error)
	Get(ctx context.Context, meetingID string) MeetupResult
	Create(ctx context.Context, meetup *Meetup) MeetupResult
	Update(ctx context.Context, meetingID string, patch MeetupPatch) MeetupResult
	Delete(ctx context.Context, meetingID string) MeetupResult
	AddRating(ctx context.Context, meetingID string, rating Rating) MeetupResult
	AddReview(ctx context.Context, meetingID string, review Review) MeetupResult
	AddRSVP(ctx context.Context, meetingID string, rsvp RSVP) RSVPResult
	RemoveRSVP(ctx context.Context, meetingID, userID string) MeetupResult
}

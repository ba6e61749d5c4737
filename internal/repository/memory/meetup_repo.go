package memory

import (
	"context"
	"errors"
	"sync"

	"meetupservice/internal/domain"
)

// document is one stored meetup guarded by its own lock, so mutators on different meetups
// never contend and the check-then-mutate of a rating or RSVP is atomic per meetup.
type document struct {
	mu     sync.Mutex
	meetup *domain.Meetup
}

type meetupRepository struct {
	mu    sync.RWMutex
	docs  map[string]*document
	order []string
}

// NewMeetupRepository returns an in-process MeetupRepository. Records are lost on restart.
func NewMeetupRepository() domain.MeetupRepository {
	return &meetupRepository{docs: make(map[string]*document)}
}

func (r *meetupRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *meetupRepository) FindAll(ctx context.Context) ([]*domain.Meetup, error) {
	r.mu.RLock()
	docs := make([]*document, 0, len(r.order))
	for _, id := range r.order {
		docs = append(docs, r.docs[id])
	}
	r.mu.RUnlock()

	meetups := make([]*domain.Meetup, 0, len(docs))
	for _, d := range docs {
		d.mu.Lock()
		if d.meetup != nil {
			meetups = append(meetups, d.meetup.Clone())
		}
		d.mu.Unlock()
	}
	return meetups, nil
}

func (r *meetupRepository) FindByMeetingID(ctx context.Context, meetingID string) (*domain.Meetup, error) {
	return r.withDocument(meetingID, func(m *domain.Meetup) error { return nil })
}

func (r *meetupRepository) Insert(ctx context.Context, m *domain.Meetup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[m.MeetingID]; ok {
		return domain.ErrDuplicateMeetingID
	}
	r.docs[m.MeetingID] = &document{meetup: m.Clone().Normalize()}
	r.order = append(r.order, m.MeetingID)
	return nil
}

func (r *meetupRepository) Update(ctx context.Context, meetingID string, patch domain.MeetupPatch) (*domain.Meetup, error) {
	return r.withDocument(meetingID, func(m *domain.Meetup) error {
		patch.Apply(m)
		return nil
	})
}

func (r *meetupRepository) Delete(ctx context.Context, meetingID string) (int64, error) {
	r.mu.Lock()
	d, ok := r.docs[meetingID]
	if !ok {
		r.mu.Unlock()
		return 0, nil
	}
	delete(r.docs, meetingID)
	for i, id := range r.order {
		if id == meetingID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	// Mutators that already hold d see a nil meetup once they get the lock.
	d.mu.Lock()
	d.meetup = nil
	d.mu.Unlock()
	return 1, nil
}

func (r *meetupRepository) UpsertRating(ctx context.Context, meetingID string, rating domain.Rating) (*domain.Meetup, error) {
	return r.withDocument(meetingID, func(m *domain.Meetup) error {
		for i := range m.Ratings {
			if m.Ratings[i].UserID == rating.UserID {
				m.Ratings[i].Rating = rating.Rating
				m.Ratings[i].Timestamp = rating.Timestamp
				return nil
			}
		}
		m.Ratings = append(m.Ratings, rating)
		return nil
	})
}

func (r *meetupRepository) AppendReview(ctx context.Context, meetingID string, review domain.Review) (*domain.Meetup, error) {
	return r.withDocument(meetingID, func(m *domain.Meetup) error {
		m.Reviews = append(m.Reviews, review)
		return nil
	})
}

func (r *meetupRepository) AppendRSVPIfAbsent(ctx context.Context, meetingID string, rsvp domain.RSVP) (domain.RSVPAppendResult, error) {
	added := false
	m, err := r.withDocument(meetingID, func(m *domain.Meetup) error {
		for _, existing := range m.RSVPs {
			if existing.UserID == rsvp.UserID {
				return nil
			}
		}
		m.RSVPs = append(m.RSVPs, rsvp)
		added = true
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.RSVPAppendResult{}, nil
		}
		return domain.RSVPAppendResult{}, err
	}
	return domain.RSVPAppendResult{Added: added, Meetup: m}, nil
}

func (r *meetupRepository) RemoveRSVP(ctx context.Context, meetingID, userID string) (*domain.Meetup, error) {
	return r.withDocument(meetingID, func(m *domain.Meetup) error {
		kept := m.RSVPs[:0]
		for _, existing := range m.RSVPs {
			if existing.UserID != userID {
				kept = append(kept, existing)
			}
		}
		m.RSVPs = kept
		return nil
	})
}

// withDocument runs fn on the stored meetup while holding its lock and returns a copy of the result.
func (r *meetupRepository) withDocument(meetingID string, fn func(m *domain.Meetup) error) (*domain.Meetup, error) {
	r.mu.RLock()
	d, ok := r.docs[meetingID]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.meetup == nil {
		return nil, domain.ErrNotFound
	}
	if err := fn(d.meetup); err != nil {
		return nil, err
	}
	return d.meetup.Clone(), nil
}

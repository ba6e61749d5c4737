package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"meetupservice/internal/domain"
)

const allMeetupsKey = "meetups:all"

type meetupRepository struct {
	next  domain.MeetupRepository
	cache *gocache.Cache

	// gen is bumped by every invalidation. A FindAll result is only stored if no
	// invalidation happened while it was being read from next.
	mu  sync.Mutex
	gen uint64
}

// NewMeetupRepository wraps next with a read-through cache of the FindAll result. Any mutating
// call drops the cached list so the next FindAll refetches it from next; entries are never
// patched in place.
func NewMeetupRepository(next domain.MeetupRepository, ttl time.Duration) domain.MeetupRepository {
	return &meetupRepository{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Ping forwards to the wrapped store when it supports health checks.
func (r *meetupRepository) Ping(ctx context.Context) error {
	if hc, ok := r.next.(domain.HealthChecker); ok {
		return hc.Ping(ctx)
	}
	return nil
}

func (r *meetupRepository) FindAll(ctx context.Context) ([]*domain.Meetup, error) {
	if cached, ok := r.cache.Get(allMeetupsKey); ok {
		return cloneAll(cached.([]*domain.Meetup)), nil
	}
	gen := r.generation()
	meetups, err := r.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	if r.gen == gen {
		r.cache.SetDefault(allMeetupsKey, cloneAll(meetups))
	}
	r.mu.Unlock()
	return meetups, nil
}

func (r *meetupRepository) FindByMeetingID(ctx context.Context, meetingID string) (*domain.Meetup, error) {
	return r.next.FindByMeetingID(ctx, meetingID)
}

func (r *meetupRepository) Insert(ctx context.Context, m *domain.Meetup) error {
	defer r.invalidate()
	return r.next.Insert(ctx, m)
}

func (r *meetupRepository) Update(ctx context.Context, meetingID string, patch domain.MeetupPatch) (*domain.Meetup, error) {
	defer r.invalidate()
	return r.next.Update(ctx, meetingID, patch)
}

func (r *meetupRepository) Delete(ctx context.Context, meetingID string) (int64, error) {
	defer r.invalidate()
	return r.next.Delete(ctx, meetingID)
}

func (r *meetupRepository) UpsertRating(ctx context.Context, meetingID string, rating domain.Rating) (*domain.Meetup, error) {
	defer r.invalidate()
	return r.next.UpsertRating(ctx, meetingID, rating)
}

func (r *meetupRepository) AppendReview(ctx context.Context, meetingID string, review domain.Review) (*domain.Meetup, error) {
	defer r.invalidate()
	return r.next.AppendReview(ctx, meetingID, review)
}

func (r *meetupRepository) AppendRSVPIfAbsent(ctx context.Context, meetingID string, rsvp domain.RSVP) (domain.RSVPAppendResult, error) {
	defer r.invalidate()
	return r.next.AppendRSVPIfAbsent(ctx, meetingID, rsvp)
}

func (r *meetupRepository) RemoveRSVP(ctx context.Context, meetingID, userID string) (*domain.Meetup, error) {
	defer r.invalidate()
	return r.next.RemoveRSVP(ctx, meetingID, userID)
}

func (r *meetupRepository) generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

func (r *meetupRepository) invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.cache.Delete(allMeetupsKey)
}

func cloneAll(meetups []*domain.Meetup) []*domain.Meetup {
	out := make([]*domain.Meetup, len(meetups))
	for i, m := range meetups {
		out[i] = m.Clone()
	}
	return out
}

package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetupservice/internal/domain"
	"meetupservice/internal/repository/memory"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var fixedNow = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

type fakeEmailService struct {
	sent []*domain.RSVPConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendRSVPConfirmation(ctx context.Context, data *domain.RSVPConfirmationEmailData) error {
	f.sent = append(f.sent, data)
	return f.err
}

// failingRepository fails every call it overrides; others are never reached in these tests.
type failingRepository struct {
	domain.MeetupRepository
	err error
}

func (f *failingRepository) FindAll(ctx context.Context) ([]*domain.Meetup, error) {
	return nil, f.err
}

func (f *failingRepository) FindByMeetingID(ctx context.Context, meetingID string) (*domain.Meetup, error) {
	return nil, f.err
}

func (f *failingRepository) AppendRSVPIfAbsent(ctx context.Context, meetingID string, rsvp domain.RSVP) (domain.RSVPAppendResult, error) {
	return domain.RSVPAppendResult{}, f.err
}

// racingRepository simulates losing a create race: the pre-check sees nothing, the insert hits
// the unique constraint.
type racingRepository struct {
	domain.MeetupRepository
}

func (r *racingRepository) FindByMeetingID(ctx context.Context, meetingID string) (*domain.Meetup, error) {
	return nil, domain.ErrNotFound
}

func (r *racingRepository) Insert(ctx context.Context, m *domain.Meetup) error {
	return domain.ErrDuplicateMeetingID
}

func newTestService(repo domain.MeetupRepository, email domain.EmailService) *meetupService {
	svc := NewMeetupService(repo, email, testLogger, 5*time.Second).(*meetupService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func newSeededService(t *testing.T, email domain.EmailService, ids ...string) (*meetupService, domain.MeetupRepository) {
	t.Helper()
	repo := memory.NewMeetupRepository()
	svc := newTestService(repo, email)
	for _, id := range ids {
		res := svc.Create(context.Background(), &domain.Meetup{MeetingID: id, Title: "Meetup " + id})
		require.True(t, res.Success, res.Message)
	}
	return svc, repo
}

func TestMeetupService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("new meetup has empty collections and server timestamp", func(t *testing.T) {
		svc, repo := newSeededService(t, nil)
		date := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
		res := svc.Create(ctx, &domain.Meetup{
			MeetingID: "M1",
			Title:     "Standup",
			Address:   "Main St",
			EventDate: &date,
			CreatedAt: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
			Ratings:   []domain.Rating{{UserID: "sneaky", Rating: 5}},
		})
		require.True(t, res.Success)

		m, err := repo.FindByMeetingID(ctx, "M1")
		require.NoError(t, err)
		assert.Equal(t, fixedNow, m.CreatedAt)
		assert.Equal(t, &date, m.EventDate)
		assert.Empty(t, m.Ratings)
		assert.Empty(t, m.Reviews)
		assert.Empty(t, m.RSVPs)
	})

	t.Run("second create with same id conflicts", func(t *testing.T) {
		svc, repo := newSeededService(t, nil, "A")

		res := svc.Create(ctx, &domain.Meetup{MeetingID: "A", Title: "Other"})
		assert.False(t, res.Success)
		assert.Equal(t, domain.ReasonConflict, res.Reason)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Meetup A", all[0].Title)
	})

	t.Run("lost race reported as conflict", func(t *testing.T) {
		svc := newTestService(&racingRepository{}, nil)

		res := svc.Create(ctx, &domain.Meetup{MeetingID: "A", Title: "Race"})
		assert.False(t, res.Success)
		assert.Equal(t, domain.ReasonConflict, res.Reason)
	})

	tests := []struct {
		name string
		data *domain.Meetup
	}{
		{"nil data", nil},
		{"empty meetingId", &domain.Meetup{Title: "Standup"}},
		{"blank meetingId", &domain.Meetup{MeetingID: "   ", Title: "Standup"}},
		{"blank title", &domain.Meetup{MeetingID: "M1", Title: "  "}},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			svc, repo := newSeededService(t, nil)

			res := svc.Create(ctx, tt.data)
			assert.False(t, res.Success)
			assert.Equal(t, domain.ReasonValidation, res.Reason)

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		svc := newTestService(&failingRepository{err: errors.New("dial tcp: connection refused")}, nil)

		res := svc.Create(ctx, &domain.Meetup{MeetingID: "A", Title: "Standup"})
		assert.False(t, res.Success)
		assert.Equal(t, domain.ReasonStoreFailure, res.Reason)
		assert.NotContains(t, res.Message, "dial tcp")
	})
}

func TestMeetupService_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("returns every meetup", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, "A", "B")

		got, err := svc.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("store failure yields empty list and error", func(t *testing.T) {
		svc := newTestService(&failingRepository{err: errors.New("boom")}, nil)

		got, err := svc.ListAll(ctx)
		require.ErrorIs(t, err, domain.ErrStoreFailure)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestMeetupService_Get(t *testing.T) {
	svc, _ := newSeededService(t, nil, "A")

	res := svc.Get(context.Background(), "A")
	require.True(t, res.Success)
	assert.Equal(t, "A", res.Meeting.MeetingID)

	res = svc.Get(context.Background(), "missing")
	assert.False(t, res.Success)
	assert.Equal(t, domain.ReasonNotFound, res.Reason)
}

func TestMeetupService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("merges patch and leaves collections alone", func(t *testing.T) {
		svc, repo := newSeededService(t, nil, "A")
		require.True(t, svc.AddRating(ctx, "A", domain.Rating{UserID: "u1", Rating: 3}).Success)

		desc := "Bring snacks"
		res := svc.Update(ctx, "A", domain.MeetupPatch{Description: &desc})
		require.True(t, res.Success)

		m, err := repo.FindByMeetingID(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, "Meetup A", m.Title)
		assert.Equal(t, "Bring snacks", m.Description)
		assert.Len(t, m.Ratings, 1)
		assert.Equal(t, fixedNow, m.CreatedAt)
	})

	t.Run("missing id fails without creating a record", func(t *testing.T) {
		svc, repo := newSeededService(t, nil)

		title := "Ghost"
		res := svc.Update(ctx, "missing-id", domain.MeetupPatch{Title: &title})
		assert.False(t, res.Success)
		assert.Equal(t, domain.ReasonNotFound, res.Reason)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, "A")

		blank := " "
		res := svc.Update(ctx, "A", domain.MeetupPatch{Title: &blank})
		assert.False(t, res.Success)
		assert.Equal(t, domain.ReasonValidation, res.Reason)
	})
}

func TestMeetupService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newSeededService(t, nil, "A")

	res := svc.Delete(ctx, "A")
	assert.True(t, res.Success)
	_, err := repo.FindByMeetingID(ctx, "A")
	require.ErrorIs(t, err, domain.ErrNotFound)

	res = svc.Delete(ctx, "A")
	assert.False(t, res.Success)
	assert.Equal(t, domain.ReasonNotFound, res.Reason)
}

func TestMeetupService_AddRating(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated rating from same user replaces value", func(t *testing.T) {
		for rating := 1; rating <= 5; rating++ {
			svc, _ := newSeededService(t, nil, "A")

			first := svc.AddRating(ctx, "A", domain.Rating{UserID: "u1", Rating: rating})
			require.True(t, first.Success)
			second := svc.AddRating(ctx, "A", domain.Rating{UserID: "u1", Rating: 6 - rating})
			require.True(t, second.Success)

			require.Len(t, second.Meeting.Ratings, len(first.Meeting.Ratings))
			assert.Equal(t, 6-rating, second.Meeting.Ratings[0].Rating)
		}
	})

	tests := []struct {
		name   string
		rating domain.Rating
	}{
		{"zero", domain.Rating{UserID: "u1", Rating: 0}},
		{"six", domain.Rating{UserID: "u1", Rating: 6}},
		{"negative", domain.Rating{UserID: "u1", Rating: -2}},
		{"missing user", domain.Rating{UserID: " ", Rating: 3}},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			svc, repo := newSeededService(t, nil, "A")

			res := svc.AddRating(ctx, "A", tt.rating)
			assert.False(t, res.Success)
			assert.Equal(t, domain.ReasonValidation, res.Reason)

			m, err := repo.FindByMeetingID(ctx, "A")
			require.NoError(t, err)
			assert.Empty(t, m.Ratings)
		})
	}

	t.Run("missing meetup", func(t *testing.T) {
		svc, _ := newSeededService(t, nil)

		res := svc.AddRating(ctx, "ghost", domain.Rating{UserID: "u1", Rating: 3})
		assert.False(t, res.Success)
		assert.Equal(t, domain.ReasonNotFound, res.Reason)
		assert.Nil(t, res.Meeting)
	})
}

func TestMeetupService_AddReview(t *testing.T) {
	ctx := context.Background()

	t.Run("same user may review many times", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, "A")

		var res domain.MeetupResult
		for _, comment := range []string{"good", "better", "best"} {
			res = svc.AddReview(ctx, "A", domain.Review{UserID: "u1", UserName: "Ann", Comment: comment})
			require.True(t, res.Success)
		}
		require.Len(t, res.Meeting.Reviews, 3)
		assert.Equal(t, "best", res.Meeting.Reviews[2].Comment)
		assert.Equal(t, fixedNow, res.Meeting.Reviews[2].Timestamp)
	})

	t.Run("trims and rejects blank fields", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, "A")

		res := svc.AddReview(ctx, "A", domain.Review{UserID: "u1", UserName: "  ", Comment: "hi"})
		assert.Equal(t, domain.ReasonValidation, res.Reason)
		res = svc.AddReview(ctx, "A", domain.Review{UserID: "u1", UserName: "Ann", Comment: "\n\t"})
		assert.Equal(t, domain.ReasonValidation, res.Reason)

		res = svc.AddReview(ctx, "A", domain.Review{UserID: "u1", UserName: " Ann ", Comment: " nice "})
		require.True(t, res.Success)
		assert.Equal(t, "Ann", res.Meeting.Reviews[0].UserName)
		assert.Equal(t, "nice", res.Meeting.Reviews[0].Comment)
	})
}

func TestMeetupService_AddRSVP(t *testing.T) {
	ctx := context.Background()
	ann := domain.RSVP{UserID: "u1", UserName: "Ann", Email: "ann@example.com"}

	t.Run("second rsvp from same user is a duplicate", func(t *testing.T) {
		email := &fakeEmailService{}
		svc, _ := newSeededService(t, email, "A")

		first := svc.AddRSVP(ctx, "A", ann)
		require.Equal(t, domain.RSVPAdded, first.Outcome)
		second := svc.AddRSVP(ctx, "A", ann)
		require.Equal(t, domain.RSVPDuplicate, second.Outcome)
		require.NotNil(t, second.Meeting)
		assert.Len(t, second.Meeting.RSVPs, len(first.Meeting.RSVPs))
		assert.Len(t, email.sent, 1)
	})

	t.Run("remove frees the slot", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, "A")

		require.Equal(t, domain.RSVPAdded, svc.AddRSVP(ctx, "A", ann).Outcome)
		removed := svc.RemoveRSVP(ctx, "A", "u1")
		require.True(t, removed.Success)
		assert.Empty(t, removed.Meeting.RSVPs)

		again := svc.AddRSVP(ctx, "A", ann)
		assert.Equal(t, domain.RSVPAdded, again.Outcome)
	})

	t.Run("ghost meetup is not found and not materialized", func(t *testing.T) {
		svc, repo := newSeededService(t, nil)

		res := svc.AddRSVP(ctx, "ghost", ann)
		assert.Equal(t, domain.RSVPNotFound, res.Outcome)
		assert.Nil(t, res.Meeting)

		_, err := repo.FindByMeetingID(ctx, "ghost")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("blank name or email rejected", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, "A")

		res := svc.AddRSVP(ctx, "A", domain.RSVP{UserID: "u1", UserName: "", Email: "ann@example.com"})
		assert.Equal(t, domain.RSVPFailed, res.Outcome)
		assert.Equal(t, domain.ReasonValidation, res.Reason)
		res = svc.AddRSVP(ctx, "A", domain.RSVP{UserID: "u1", UserName: "Ann", Email: "  "})
		assert.Equal(t, domain.RSVPFailed, res.Outcome)
		assert.Equal(t, domain.ReasonValidation, res.Reason)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := newTestService(&failingRepository{err: errors.New("boom")}, nil)

		res := svc.AddRSVP(ctx, "A", ann)
		assert.Equal(t, domain.RSVPFailed, res.Outcome)
		assert.Equal(t, domain.ReasonStoreFailure, res.Reason)
	})

	t.Run("email failure does not change outcome", func(t *testing.T) {
		email := &fakeEmailService{err: errors.New("ses throttled")}
		svc, _ := newSeededService(t, email, "A")
		date := time.Date(2025, 5, 5, 19, 30, 0, 0, time.UTC)
		require.True(t, svc.Update(ctx, "A", domain.MeetupPatch{EventDate: &date}).Success)

		res := svc.AddRSVP(ctx, "A", ann)
		assert.Equal(t, domain.RSVPAdded, res.Outcome)
		require.Len(t, email.sent, 1)
		assert.Equal(t, "ann@example.com", email.sent[0].Email)
		assert.Equal(t, "Meetup A", email.sent[0].Title)
		assert.Contains(t, email.sent[0].EventDate, "May 5, 2025")
	})
}

func TestMeetupService_RemoveRSVP(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t, nil, "A")

	res := svc.RemoveRSVP(ctx, "A", "nobody")
	assert.True(t, res.Success)

	res = svc.RemoveRSVP(ctx, "ghost", "u1")
	assert.False(t, res.Success)
	assert.Equal(t, domain.ReasonNotFound, res.Reason)

	res = svc.RemoveRSVP(ctx, "A", "")
	assert.Equal(t, domain.ReasonValidation, res.Reason)
}

func TestMeetupService_RatingScenario(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMeetupRepository()
	svc := newTestService(repo, nil)

	require.True(t, svc.Create(ctx, &domain.Meetup{MeetingID: "M1", Title: "Standup"}).Success)
	require.True(t, svc.AddRating(ctx, "M1", domain.Rating{UserID: "u1", Rating: 4}).Success)
	require.True(t, svc.AddRating(ctx, "M1", domain.Rating{UserID: "u1", Rating: 2}).Success)

	m, err := repo.FindByMeetingID(ctx, "M1")
	require.NoError(t, err)
	require.Len(t, m.Ratings, 1)
	assert.Equal(t, 2, m.Ratings[0].Rating)
	assert.Equal(t, "u1", m.Ratings[0].UserID)
}

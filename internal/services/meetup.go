package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"meetupservice/internal/domain"
)

type meetupService struct {
	repo           domain.MeetupRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	validate       *validator.Validate
	now            func() time.Time
	contextTimeout time.Duration
}

// NewMeetupService returns the MeetupService. emailService may be nil, in which case no RSVP
// confirmation is sent.
func NewMeetupService(
	repo domain.MeetupRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.MeetupService {
	return &meetupService{
		repo:           repo,
		emailService:   emailService,
		logger:         logger,
		validate:       newValidator(),
		now:            time.Now,
		contextTimeout: timeout,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *meetupService) ListAll(ctx context.Context) ([]*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetups, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "store operation failed", "op", "list meetups", "err", err)
		return []*domain.Meetup{}, fmt.Errorf("%w: list meetups: %w", domain.ErrStoreFailure, err)
	}
	return meetups, nil
}

func (s *meetupService) Get(ctx context.Context, meetingID string) domain.MeetupResult {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return domain.Failed(missing("meetingId"))
	}
	m, err := s.repo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return s.fail(ctx, "get meetup", err)
	}
	return domain.Succeeded(m)
}

// Create inserts a new meetup. The existence check is only a fast path for the common case; the
// store's uniqueness constraint on meetingId decides concurrent creates.
func (s *meetupService) Create(ctx context.Context, data *domain.Meetup) domain.MeetupResult {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if data == nil {
		return domain.Failed(fmt.Errorf("%w: meetup data is required", domain.ErrValidation))
	}
	m := domain.NewMeetup(
		strings.TrimSpace(data.MeetingID),
		strings.TrimSpace(data.Title),
		data.Image,
		data.Address,
		data.Description,
		data.EventDate,
		s.now(),
	)
	if err := s.check(m); err != nil {
		return domain.Failed(err)
	}

	if _, err := s.repo.FindByMeetingID(ctx, m.MeetingID); err == nil {
		return domain.Failed(fmt.Errorf("%w: meetup %q already exists", domain.ErrConflict, m.MeetingID))
	} else if !errors.Is(err, domain.ErrNotFound) {
		return s.fail(ctx, "create meetup", err)
	}

	if err := s.repo.Insert(ctx, m); err != nil {
		return s.fail(ctx, "create meetup", err)
	}
	return domain.Succeeded(m)
}

func (s *meetupService) Update(ctx context.Context, meetingID string, patch domain.MeetupPatch) domain.MeetupResult {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return domain.Failed(missing("meetingId"))
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return domain.Failed(fmt.Errorf("%w: title cannot be empty", domain.ErrValidation))
		}
		patch.Title = &title
	}

	m, err := s.repo.Update(ctx, meetingID, patch)
	if err != nil {
		return s.fail(ctx, "update meetup", err)
	}
	return domain.Succeeded(m)
}

func (s *meetupService) Delete(ctx context.Context, meetingID string) domain.MeetupResult {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return domain.Failed(missing("meetingId"))
	}
	removed, err := s.repo.Delete(ctx, meetingID)
	if err != nil {
		return s.fail(ctx, "delete meetup", err)
	}
	if removed == 0 {
		return domain.Failed(notFound(meetingID))
	}
	return domain.Succeeded(nil)
}

func (s *meetupService) AddRating(ctx context.Context, meetingID string, rating domain.Rating) domain.MeetupResult {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return domain.Failed(missing("meetingId"))
	}
	rating.UserID = strings.TrimSpace(rating.UserID)
	if err := s.check(rating); err != nil {
		return domain.Failed(err)
	}
	rating.Timestamp = s.now()

	m, err := s.repo.UpsertRating(ctx, meetingID, rating)
	if err != nil {
		return s.fail(ctx, "add rating", err)
	}
	return domain.Succeeded(m)
}

func (s *meetupService) AddReview(ctx context.Context, meetingID string, review domain.Review) domain.MeetupResult {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return domain.Failed(missing("meetingId"))
	}
	review.UserName = strings.TrimSpace(review.UserName)
	review.Comment = strings.TrimSpace(review.Comment)
	if err := s.check(review); err != nil {
		return domain.Failed(err)
	}
	review.Timestamp = s.now()

	m, err := s.repo.AppendReview(ctx, meetingID, review)
	if err != nil {
		return s.fail(ctx, "add review", err)
	}
	return domain.Succeeded(m)
}

// AddRSVP reports duplicate and missing-meetup attempts as outcomes rather than failures; only
// validation and store errors yield RSVPFailed.
func (s *meetupService) AddRSVP(ctx context.Context, meetingID string, rsvp domain.RSVP) domain.RSVPResult {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return rsvpFailed(missing("meetingId"))
	}
	rsvp.UserID = strings.TrimSpace(rsvp.UserID)
	rsvp.UserName = strings.TrimSpace(rsvp.UserName)
	rsvp.Email = strings.TrimSpace(rsvp.Email)
	if err := s.check(rsvp); err != nil {
		return rsvpFailed(err)
	}
	rsvp.Timestamp = s.now()

	res, err := s.repo.AppendRSVPIfAbsent(ctx, meetingID, rsvp)
	if err != nil {
		s.logger.ErrorContext(ctx, "store operation failed", "op", "add rsvp", "err", err)
		return domain.RSVPResult{Outcome: domain.RSVPFailed, Reason: domain.ReasonStoreFailure, Message: "add rsvp: store unavailable"}
	}
	switch {
	case res.Meetup == nil:
		return domain.RSVPResult{Outcome: domain.RSVPNotFound, Reason: domain.ReasonNotFound, Message: notFound(meetingID).Error()}
	case !res.Added:
		return domain.RSVPResult{Outcome: domain.RSVPDuplicate, Reason: domain.ReasonConflict, Message: "already RSVP'd to this meetup", Meeting: res.Meetup}
	}
	s.confirmRSVP(ctx, res.Meetup, rsvp)
	return domain.RSVPResult{Outcome: domain.RSVPAdded, Meeting: res.Meetup}
}

func (s *meetupService) RemoveRSVP(ctx context.Context, meetingID, userID string) domain.MeetupResult {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetingID = strings.TrimSpace(meetingID)
	userID = strings.TrimSpace(userID)
	if meetingID == "" {
		return domain.Failed(missing("meetingId"))
	}
	if userID == "" {
		return domain.Failed(missing("userId"))
	}
	m, err := s.repo.RemoveRSVP(ctx, meetingID, userID)
	if err != nil {
		return s.fail(ctx, "remove rsvp", err)
	}
	return domain.Succeeded(m)
}

// confirmRSVP sends the confirmation email. A send failure is logged and never changes the outcome.
func (s *meetupService) confirmRSVP(ctx context.Context, m *domain.Meetup, rsvp domain.RSVP) {
	if s.emailService == nil {
		return
	}
	data := &domain.RSVPConfirmationEmailData{
		Email:    rsvp.Email,
		UserName: rsvp.UserName,
		Title:    m.Title,
		Address:  m.Address,
	}
	if m.EventDate != nil {
		data.EventDate = m.EventDate.Format("Monday, January 2, 2006 at 15:04 MST")
	}
	if err := s.emailService.SendRSVPConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "rsvp confirmation not sent", "meeting_id", m.MeetingID, "err", err)
	}
}

// fail converts err into a failed result. Store errors are logged here and replaced by a generic
// message so driver details never reach the caller.
func (s *meetupService) fail(ctx context.Context, op string, err error) domain.MeetupResult {
	if domain.ReasonFor(err) == domain.ReasonStoreFailure {
		s.logger.ErrorContext(ctx, "store operation failed", "op", op, "err", err)
		return domain.MeetupResult{Reason: domain.ReasonStoreFailure, Message: op + ": store unavailable"}
	}
	return domain.Failed(err)
}

func (s *meetupService) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func rsvpFailed(err error) domain.RSVPResult {
	return domain.RSVPResult{Outcome: domain.RSVPFailed, Reason: domain.ReasonFor(err), Message: err.Error()}
}

func missing(field string) error {
	return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
}

func notFound(meetingID string) error {
	return fmt.Errorf("%w: meetup %q", domain.ErrNotFound, meetingID)
}

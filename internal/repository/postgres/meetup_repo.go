package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"meetupservice/internal/domain"
)

// SQLSTATE codes mapped to domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

//go:embed schema.sql
var schema string

// Migrate creates the meetup tables and constraints if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const selectMeetups = `
		SELECT meeting_id, title, image, address, description, event_date, created_at
		FROM meetups`

type meetupRepository struct {
	DB *sql.DB
}

// NewMeetupRepository returns a MeetupRepository backed by Postgres. Ratings, reviews and RSVPs
// live in child tables ordered by their serial id; the (meeting_id, user_id) unique constraints on
// ratings and RSVPs make the per-user dedup a single atomic statement.
func NewMeetupRepository(db *sql.DB) domain.MeetupRepository {
	return &meetupRepository{
		DB: db,
	}
}

func (r *meetupRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func (r *meetupRepository) FindAll(ctx context.Context) ([]*domain.Meetup, error) {
	rows, err := r.DB.QueryContext(ctx, selectMeetups+` ORDER BY created_at, meeting_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meetups := make([]*domain.Meetup, 0)
	byID := make(map[string]*domain.Meetup)
	for rows.Next() {
		m, err := scanMeetup(rows)
		if err != nil {
			return nil, err
		}
		meetups = append(meetups, m)
		byID[m.MeetingID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(meetups) == 0 {
		return meetups, nil
	}
	if err := r.loadChildren(ctx, byID, ""); err != nil {
		return nil, err
	}
	return meetups, nil
}

func (r *meetupRepository) FindByMeetingID(ctx context.Context, meetingID string) (*domain.Meetup, error) {
	m, err := scanMeetup(r.DB.QueryRowContext(ctx, selectMeetups+` WHERE meeting_id = $1`, meetingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	byID := map[string]*domain.Meetup{m.MeetingID: m}
	if err := r.loadChildren(ctx, byID, ` WHERE meeting_id = $1`, meetingID); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *meetupRepository) Insert(ctx context.Context, m *domain.Meetup) error {
	query := `
		INSERT INTO meetups (meeting_id, title, image, address, description, event_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	var eventDate sql.NullTime
	if m.EventDate != nil {
		eventDate = sql.NullTime{Time: *m.EventDate, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query, m.MeetingID, m.Title, m.Image, m.Address, m.Description, eventDate, m.CreatedAt)
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return domain.ErrDuplicateMeetingID
		}
		return err
	}
	return nil
}

func (r *meetupRepository) Update(ctx context.Context, meetingID string, patch domain.MeetupPatch) (*domain.Meetup, error) {
	if patch.IsEmpty() {
		// Nothing to merge; just fetch current record
		return r.FindByMeetingID(ctx, meetingID)
	}
	var setClauses []string
	var args []interface{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Image != nil {
		set("image", *patch.Image)
	}
	if patch.Address != nil {
		set("address", *patch.Address)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.EventDate != nil {
		set("event_date", *patch.EventDate)
	}
	args = append(args, meetingID)
	query := fmt.Sprintf(`UPDATE meetups SET %s WHERE meeting_id = $%d`, strings.Join(setClauses, ", "), len(args))
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return r.FindByMeetingID(ctx, meetingID)
}

func (r *meetupRepository) Delete(ctx context.Context, meetingID string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM meetups WHERE meeting_id = $1`, meetingID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *meetupRepository) UpsertRating(ctx context.Context, meetingID string, rating domain.Rating) (*domain.Meetup, error) {
	query := `
		INSERT INTO meetup_ratings (meeting_id, user_id, rating, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (meeting_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, created_at = EXCLUDED.created_at
	`
	if _, err := r.DB.ExecContext(ctx, query, meetingID, rating.UserID, rating.Rating, rating.Timestamp); err != nil {
		if hasCode(err, foreignKeyViolation) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.FindByMeetingID(ctx, meetingID)
}

func (r *meetupRepository) AppendReview(ctx context.Context, meetingID string, review domain.Review) (*domain.Meetup, error) {
	query := `
		INSERT INTO meetup_reviews (meeting_id, user_id, user_name, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.DB.ExecContext(ctx, query, meetingID, review.UserID, review.UserName, review.Comment, review.Timestamp); err != nil {
		if hasCode(err, foreignKeyViolation) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.FindByMeetingID(ctx, meetingID)
}

func (r *meetupRepository) AppendRSVPIfAbsent(ctx context.Context, meetingID string, rsvp domain.RSVP) (domain.RSVPAppendResult, error) {
	query := `
		INSERT INTO meetup_rsvps (meeting_id, user_id, user_name, email, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (meeting_id, user_id) DO NOTHING
	`
	result, err := r.DB.ExecContext(ctx, query, meetingID, rsvp.UserID, rsvp.UserName, rsvp.Email, rsvp.Timestamp)
	if err != nil {
		if hasCode(err, foreignKeyViolation) {
			return domain.RSVPAppendResult{}, nil
		}
		return domain.RSVPAppendResult{}, err
	}
	added, err := result.RowsAffected()
	if err != nil {
		return domain.RSVPAppendResult{}, err
	}
	m, err := r.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Deleted between the insert and the read.
			return domain.RSVPAppendResult{}, nil
		}
		return domain.RSVPAppendResult{}, err
	}
	return domain.RSVPAppendResult{Added: added > 0, Meetup: m}, nil
}

func (r *meetupRepository) RemoveRSVP(ctx context.Context, meetingID, userID string) (*domain.Meetup, error) {
	query := `DELETE FROM meetup_rsvps WHERE meeting_id = $1 AND user_id = $2`
	if _, err := r.DB.ExecContext(ctx, query, meetingID, userID); err != nil {
		return nil, err
	}
	return r.FindByMeetingID(ctx, meetingID)
}

// loadChildren fills ratings, reviews and RSVPs of the meetups in byID. where is appended to
// each child query and must use args as its placeholders.
func (r *meetupRepository) loadChildren(ctx context.Context, byID map[string]*domain.Meetup, where string, args ...interface{}) error {
	rows, err := r.DB.QueryContext(ctx, `SELECT meeting_id, user_id, rating, created_at FROM meetup_ratings`+where+` ORDER BY id`, args...)
	if err != nil {
		return fmt.Errorf("list ratings: %w", err)
	}
	for rows.Next() {
		var meetingID string
		var rt domain.Rating
		if err := rows.Scan(&meetingID, &rt.UserID, &rt.Rating, &rt.Timestamp); err != nil {
			rows.Close()
			return err
		}
		if m, ok := byID[meetingID]; ok {
			m.Ratings = append(m.Ratings, rt)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.DB.QueryContext(ctx, `SELECT meeting_id, user_id, user_name, comment, created_at FROM meetup_reviews`+where+` ORDER BY id`, args...)
	if err != nil {
		return fmt.Errorf("list reviews: %w", err)
	}
	for rows.Next() {
		var meetingID string
		var rv domain.Review
		if err := rows.Scan(&meetingID, &rv.UserID, &rv.UserName, &rv.Comment, &rv.Timestamp); err != nil {
			rows.Close()
			return err
		}
		if m, ok := byID[meetingID]; ok {
			m.Reviews = append(m.Reviews, rv)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.DB.QueryContext(ctx, `SELECT meeting_id, user_id, user_name, email, created_at FROM meetup_rsvps`+where+` ORDER BY id`, args...)
	if err != nil {
		return fmt.Errorf("list rsvps: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var meetingID string
		var rs domain.RSVP
		if err := rows.Scan(&meetingID, &rs.UserID, &rs.UserName, &rs.Email, &rs.Timestamp); err != nil {
			return err
		}
		if m, ok := byID[meetingID]; ok {
			m.RSVPs = append(m.RSVPs, rs)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMeetup(row rowScanner) (*domain.Meetup, error) {
	m := &domain.Meetup{}
	var eventDate sql.NullTime
	if err := row.Scan(&m.MeetingID, &m.Title, &m.Image, &m.Address, &m.Description, &eventDate, &m.CreatedAt); err != nil {
		return nil, err
	}
	if eventDate.Valid {
		m.EventDate = &eventDate.Time
	}
	return m.Normalize(), nil
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

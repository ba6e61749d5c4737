package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"meetupservice/internal/domain"
)

// CollectionName is the collection meetups are stored in.
const CollectionName = "meetings"

type meetupRepository struct {
	coll *mongo.Collection
}

// NewMeetupRepository returns a MeetupRepository storing one document per meetup with the
// ratings, reviews and RSVPs embedded as arrays.
func NewMeetupRepository(coll *mongo.Collection) domain.MeetupRepository {
	return &meetupRepository{coll: coll}
}

// EnsureIndexes creates the unique index on meetingId that backs create-race detection.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "meetingId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("meetingId_unique"),
	})
	if err != nil {
		return fmt.Errorf("create meetingId index: %w", err)
	}
	return nil
}

func (r *meetupRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func (r *meetupRepository) FindAll(ctx context.Context) ([]*domain.Meetup, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	meetups := make([]*domain.Meetup, 0)
	for cursor.Next(ctx) {
		m := &domain.Meetup{}
		if err := cursor.Decode(m); err != nil {
			return nil, fmt.Errorf("decode meetup: %w", err)
		}
		meetups = append(meetups, m.Normalize())
	}
	return meetups, cursor.Err()
}

func (r *meetupRepository) FindByMeetingID(ctx context.Context, meetingID string) (*domain.Meetup, error) {
	return decodeOne(r.coll.FindOne(ctx, bson.M{"meetingId": meetingID}))
}

func (r *meetupRepository) Insert(ctx context.Context, m *domain.Meetup) error {
	doc := m.Clone().Normalize()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateMeetingID
		}
		return err
	}
	return nil
}

func (r *meetupRepository) Update(ctx context.Context, meetingID string, patch domain.MeetupPatch) (*domain.Meetup, error) {
	if patch.IsEmpty() {
		return r.FindByMeetingID(ctx, meetingID)
	}
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.EventDate != nil {
		set["eventDate"] = *patch.EventDate
	}
	return r.findOneAndUpdate(ctx, bson.M{"meetingId": meetingID}, bson.M{"$set": set})
}

func (r *meetupRepository) Delete(ctx context.Context, meetingID string) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"meetingId": meetingID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// UpsertRating replaces the caller's rating in place when present, otherwise pushes a new one.
// Both branches are conditional single-document updates; if the push loses a race to a concurrent
// push for the same user, the next pass takes the replace branch.
func (r *meetupRepository) UpsertRating(ctx context.Context, meetingID string, rating domain.Rating) (*domain.Meetup, error) {
	for attempt := 0; attempt < 2; attempt++ {
		m, err := r.findOneAndUpdate(ctx,
			bson.M{"meetingId": meetingID, "ratings.userId": rating.UserID},
			bson.M{"$set": bson.M{
				"ratings.$.rating":    rating.Rating,
				"ratings.$.timestamp": rating.Timestamp,
			}},
		)
		if !errors.Is(err, domain.ErrNotFound) {
			return m, err
		}
		m, err = r.findOneAndUpdate(ctx,
			bson.M{"meetingId": meetingID, "ratings.userId": bson.M{"$ne": rating.UserID}},
			bson.M{"$push": bson.M{"ratings": rating}},
		)
		if !errors.Is(err, domain.ErrNotFound) {
			return m, err
		}
	}
	return nil, domain.ErrNotFound
}

func (r *meetupRepository) AppendReview(ctx context.Context, meetingID string, review domain.Review) (*domain.Meetup, error) {
	return r.findOneAndUpdate(ctx, bson.M{"meetingId": meetingID}, bson.M{"$push": bson.M{"reviews": review}})
}

// AppendRSVPIfAbsent pushes the RSVP only when no entry for the user exists. When the guarded push
// matches nothing, a read tells a missing meetup from a duplicate; if that read shows no RSVP for the
// user (it was removed in between), the push is tried once more.
func (r *meetupRepository) AppendRSVPIfAbsent(ctx context.Context, meetingID string, rsvp domain.RSVP) (domain.RSVPAppendResult, error) {
	var current *domain.Meetup
	for attempt := 0; attempt < 2; attempt++ {
		m, err := r.findOneAndUpdate(ctx,
			bson.M{"meetingId": meetingID, "rsvps.userId": bson.M{"$ne": rsvp.UserID}},
			bson.M{"$push": bson.M{"rsvps": rsvp}},
		)
		if err == nil {
			return domain.RSVPAppendResult{Added: true, Meetup: m}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.RSVPAppendResult{}, err
		}
		current, err = r.FindByMeetingID(ctx, meetingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.RSVPAppendResult{}, nil
			}
			return domain.RSVPAppendResult{}, err
		}
		if hasRSVP(current, rsvp.UserID) {
			break
		}
	}
	return domain.RSVPAppendResult{Added: false, Meetup: current}, nil
}

func hasRSVP(m *domain.Meetup, userID string) bool {
	for _, existing := range m.RSVPs {
		if existing.UserID == userID {
			return true
		}
	}
	return false
}

func (r *meetupRepository) RemoveRSVP(ctx context.Context, meetingID, userID string) (*domain.Meetup, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"meetingId": meetingID},
		bson.M{"$pull": bson.M{"rsvps": bson.M{"userId": userID}}},
	)
}

func (r *meetupRepository) findOneAndUpdate(ctx context.Context, filter, update interface{}) (*domain.Meetup, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeOne(r.coll.FindOneAndUpdate(ctx, filter, update, opts))
}

func decodeOne(res *mongo.SingleResult) (*domain.Meetup, error) {
	m := &domain.Meetup{}
	if err := res.Decode(m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m.Normalize(), nil
}

package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/boardkit/member-system/internal/core/domain"
)

const legacyCollection = "legacy_members"

// LegacyMemberRepository reads the superseded account table. The core
// never inserts or deletes rows here; the last-login touch is the sole
// write.
type LegacyMemberRepository struct {
	coll *mongo.Collection
}

func NewLegacyMemberRepository(db *mongo.Database) *LegacyMemberRepository {
	return &LegacyMemberRepository{coll: db.Collection(legacyCollection)}
}

type legacyDoc struct {
	LoginID      string `bson:"login_id"`
	Email        string `bson:"email,omitempty"`
	PasswordHash string `bson:"password_hash"`
	LastLoginAt  *int64 `bson:"last_login_at,omitempty"`
}

// FindByLoginID queries the single legacy identifier column. The column
// historically held usernames and email addresses interchangeably, so the
// caller's identifier matches whichever value the row stored.
func (r *LegacyMemberRepository) FindByLoginID(ctx context.Context, loginID string) (*domain.LegacyMember, error) {
	var doc legacyDoc
	if err := r.coll.FindOne(ctx, bson.M{"login_id": loginID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrLegacyNotFound
		}
		return nil, fmt.Errorf("find legacy member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *LegacyMemberRepository) List(ctx context.Context, limit int) ([]*domain.LegacyMember, error) {
	opts := options.Find().SetSort(bson.D{{Key: "login_id", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list legacy members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []*domain.LegacyMember
	for cursor.Next(ctx) {
		var doc legacyDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode legacy member: %w", err)
		}
		members = append(members, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list legacy members: %w", err)
	}

	return members, nil
}

func (r *LegacyMemberRepository) TouchLastLogin(ctx context.Context, loginID string, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"login_id": loginID},
		bson.M{"$set": bson.M{"last_login_at": at.UTC().Unix()}},
	)
	if err != nil {
		return fmt.Errorf("touch legacy last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLegacyNotFound
	}
	return nil
}

func (d *legacyDoc) toDomain() *domain.LegacyMember {
	lm := &domain.LegacyMember{
		LoginID:      d.LoginID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
	}
	// Older rows stored a single value for both identifier and address.
	if lm.Email == "" {
		lm.Email = lm.LoginID
	}
	if d.LastLoginAt != nil {
		t := unixToTime(*d.LastLoginAt)
		lm.LastLoginAt = &t
	}
	return lm
}

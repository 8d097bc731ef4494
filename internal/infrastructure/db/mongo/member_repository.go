package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/boardkit/member-system/internal/core/domain"
	"github.com/boardkit/member-system/internal/core/ports"
)

const memberCollection = "members"

type MemberRepository struct {
	coll *mongo.Collection
}

func NewMemberRepository(db *mongo.Database) *MemberRepository {
	return &MemberRepository{coll: db.Collection(memberCollection)}
}

type memberDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Username      string             `bson:"username"`
	Email         string             `bson:"email"`
	PasswordHash  string             `bson:"password_hash"`
	HashAlgorithm string             `bson:"hash_algorithm"`
	Level         int                `bson:"level"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
	DeletedAt     *int64             `bson:"deleted_at,omitempty"`
}

// EnsureIndexes creates the unique indexes on username and email. These are
// the storage-layer guard that turns a concurrent double migration into a
// duplicate-key conflict instead of a silent second insert.
func (r *MemberRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("ensure member indexes: %w", err)
	}
	return nil
}

func (r *MemberRepository) Create(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	doc := memberDoc{
		Username:      m.Username,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		HashAlgorithm: m.HashAlgorithm,
		Level:         m.Level,
		CreatedAt:     m.CreatedAt.Unix(),
		UpdatedAt:     m.UpdatedAt.Unix(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMemberExists
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}

	// fetch back to get ID
	return r.FindByUsername(ctx, m.Username)
}

func (r *MemberRepository) FindByUsername(ctx context.Context, username string) (*domain.Member, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MemberRepository) findOne(ctx context.Context, filter bson.M) (*domain.Member, error) {
	var doc memberDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return doc.toDomain(), nil
}

// Exists counts members holding the given username or email, soft-deleted
// rows included: a deleted migrated account still counts as migrated.
func (r *MemberRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("member exists: %w", err)
	}
	return n > 0, nil
}

func (r *MemberRepository) List(ctx context.Context, filter ports.ListMembersFilter) ([]*domain.Member, int64, error) {
	query := bson.M{}
	if !filter.IncludeDeleted {
		query["deleted_at"] = bson.M{"$exists": false}
	}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"username": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count members: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "username", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}
	defer cursor.Close(ctx)

	members := make([]*domain.Member, 0, limit)
	for cursor.Next(ctx) {
		var doc memberDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode member: %w", err)
		}
		members = append(members, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}

	return members, total, nil
}

func (r *MemberRepository) SoftDelete(ctx context.Context, username string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"username": username, "deleted_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"deleted_at": time.Now().UTC().Unix()}},
	)
	if err != nil {
		return fmt.Errorf("soft delete member: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepository) Restore(ctx context.Context, username string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"username": username, "deleted_at": bson.M{"$exists": true}},
		bson.M{"$unset": bson.M{"deleted_at": ""}},
	)
	if err != nil {
		return fmt.Errorf("restore member: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (d *memberDoc) toDomain() *domain.Member {
	m := &domain.Member{
		ID:            d.ID.Hex(),
		Username:      d.Username,
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		HashAlgorithm: d.HashAlgorithm,
		Level:         d.Level,
		CreatedAt:     unixToTime(d.CreatedAt),
		UpdatedAt:     unixToTime(d.UpdatedAt),
	}
	if d.DeletedAt != nil {
		t := unixToTime(*d.DeletedAt)
		m.DeletedAt = &t
	}
	return m
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

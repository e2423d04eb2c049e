package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffcore/employee-system/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID           int64   `bson:"_id"`
	Username     string  `bson:"user_name"`
	PasswordHash string  `bson:"hashed_password"`
	IsAdmin      bool    `bson:"is_admin"`
	IsOwner      bool    `bson:"is_owner"`
	FirstName    string  `bson:"first_name"`
	LastName     string  `bson:"last_name"`
	Birthday     int64   `bson:"birthday"`
	PhoneNumber  string  `bson:"phone_number"`
	Email        string  `bson:"email"`
	Salary       float64 `bson:"salary"`
	RegisterDate int64   `bson:"register_date"`
	ImagePath    string  `bson:"img_path,omitempty"`
	RoleID       int64   `bson:"roles_id"`
	TerminatedAt int64   `bson:"terminated_at,omitempty"`
}

func toUserDoc(u *domain.User) userDoc {
	doc := userDoc{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		IsOwner:      u.IsOwner,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Birthday:     u.Birthday.Unix(),
		PhoneNumber:  u.PhoneNumber,
		Email:        u.Email,
		Salary:       u.Salary,
		RegisterDate: u.RegisterDate.Unix(),
		ImagePath:    u.ImagePath,
		RoleID:       u.RoleID,
	}
	if u.TerminatedAt != nil {
		doc.TerminatedAt = u.TerminatedAt.Unix()
	}
	return doc
}

func (d userDoc) toDomain() *domain.User {
	user := &domain.User{
		ID:           d.ID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		IsAdmin:      d.IsAdmin,
		IsOwner:      d.IsOwner,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Birthday:     unixToTime(d.Birthday),
		PhoneNumber:  d.PhoneNumber,
		Email:        d.Email,
		Salary:       d.Salary,
		RegisterDate: unixToTime(d.RegisterDate),
		ImagePath:    d.ImagePath,
		RoleID:       d.RoleID,
	}
	if d.TerminatedAt != 0 {
		t := unixToTime(d.TerminatedAt)
		user.TerminatedAt = &t
	}
	return user
}

// Create assigns the next user id from the sequence counter and inserts the
// record. A duplicate-key error on the username index is returned as
// domain.ErrUsernameTaken — the canonical uniqueness signal.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := nextSequence(ctx, r.db, usersCollection)
	if err != nil {
		return nil, err
	}

	doc := toUserDoc(user)
	doc.ID = id

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"user_name": username}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces the stored document. Renames hitting the username index
// surface as domain.ErrUsernameTaken.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := toUserDoc(user)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List returns a page of users ordered by id together with the total count.
func (r *UserRepository) List(ctx context.Context, skip, limit int64) ([]*domain.User, int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, count, nil
}

// CountByRole reports how many users reference the given role. Role deletion
// is refused while this is non-zero.
func (r *UserRepository) CountByRole(ctx context.Context, roleID int64) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"roles_id": roleID})
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

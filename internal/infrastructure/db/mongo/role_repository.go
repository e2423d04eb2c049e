package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffcore/employee-system/internal/core/domain"
)

const rolesCollection = "roles"

type RoleRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{db: db, coll: db.Collection(rolesCollection)}
}

type roleDoc struct {
	ID          int64  `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description,omitempty"`
	DateCreated int64  `bson:"date_created"`
}

func (d roleDoc) toDomain() *domain.Role {
	return &domain.Role{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		DateCreated: unixToTime(d.DateCreated),
	}
}

// Create assigns the next role id and inserts the record. A duplicate-key
// error on the name index is returned as domain.ErrRoleNameTaken.
func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	id, err := nextSequence(ctx, r.db, rolesCollection)
	if err != nil {
		return nil, err
	}

	doc := roleDoc{
		ID:          id,
		Name:        role.Name,
		Description: role.Description,
		DateCreated: role.DateCreated.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRoleNameTaken
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	var doc roleDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var doc roleDoc
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	doc := roleDoc{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		DateCreated: role.DateCreated.Unix(),
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": role.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRoleNameTaken
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRoleNotFound
	}
	return doc.toDomain(), nil
}

func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

// List returns a page of roles ordered by id together with the total count.
func (r *RoleRepository) List(ctx context.Context, skip, limit int64) ([]*domain.Role, int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count roles: %w", err)
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list roles: %w", err)
	}
	defer cursor.Close(ctx)

	var roles []*domain.Role
	for cursor.Next(ctx) {
		var doc roleDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list roles: %w", err)
	}

	return roles, count, nil
}

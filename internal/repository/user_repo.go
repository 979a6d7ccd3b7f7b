package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/containerd/errdefs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/feijonts/aps-5-api/internal/models"
)

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(col *mongo.Collection) *UserRepository {
	return &UserRepository{Col: col}
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	cursor, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if user.Name == "" {
		return models.User{}, fmt.Errorf("name is required: %w", errdefs.ErrInvalidArgument)
	}
	if user.TaxID == "" {
		return models.User{}, fmt.Errorf("taxId is required: %w", errdefs.ErrInvalidArgument)
	}
	if user.BirthDate == "" {
		return models.User{}, fmt.Errorf("birthDate is required: %w", errdefs.ErrInvalidArgument)
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	count, err := r.Col.CountDocuments(ctx, bson.M{"tax_id": user.TaxID})
	if err != nil {
		return models.User{}, fmt.Errorf("checking taxId: %w", err)
	}
	if count > 0 {
		return models.User{}, fmt.Errorf("a user with this taxId already exists: %w", errdefs.ErrConflict)
	}

	user.ID = primitive.NewObjectID()
	user.LoanRefs = []primitive.ObjectID{}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if _, err := r.Col.InsertOne(ctx, user); err != nil {
		// the unique index closes the race the count check leaves open
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, fmt.Errorf("a user with this taxId already exists: %w", errdefs.ErrConflict)
		}
		return models.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, fmt.Errorf("invalid user id: %w", errdefs.ErrInvalidArgument)
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var user models.User
	if err := r.Col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, fmt.Errorf("user not found: %w", errdefs.ErrNotFound)
		}
		return models.User{}, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

// Update merges the given fields and returns the full updated record. An
// unrecognized field rejects the whole update before anything is written.
func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]any) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, fmt.Errorf("invalid user id: %w", errdefs.ErrInvalidArgument)
	}

	set := bson.M{}
	for field, value := range fields {
		key, ok := models.UserUpdateKey(field)
		if !ok {
			return models.User{}, fmt.Errorf("field %q does not exist: %w", field, errdefs.ErrInvalidArgument)
		}
		set[key] = value
	}
	set["updated_at"] = time.Now()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := r.Col.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, fmt.Errorf("a user with this taxId already exists: %w", errdefs.ErrConflict)
		}
		return models.User{}, fmt.Errorf("updating user: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.User{}, fmt.Errorf("user not found: %w", errdefs.ErrNotFound)
	}

	var user models.User
	if err := r.Col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return models.User{}, fmt.Errorf("fetching updated user: %w", err)
	}
	return user, nil
}

// Delete removes the record. Loans the user still holds are not cascaded, a
// dangling reference inside a bike is accepted behavior.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", errdefs.ErrInvalidArgument)
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("user not found: %w", errdefs.ErrNotFound)
	}
	return nil
}

// AppendLoanRef records a started loan on the user document.
func (r *UserRepository) AppendLoanRef(ctx context.Context, userID, loanID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := r.Col.UpdateByID(ctx, userID, bson.M{
		"$push": bson.M{"loans": loanID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("recording loan on user: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user not found: %w", errdefs.ErrNotFound)
	}
	return nil
}

// removeFirstRef drops the first entry whose hex form equals loanID, in
// list order. Remaining duplicates, if any, are left alone.
func removeFirstRef(refs []primitive.ObjectID, loanID string) []primitive.ObjectID {
	for i, ref := range refs {
		if ref.Hex() == loanID {
			return append(refs[:i], refs[i+1:]...)
		}
	}
	return refs
}

func (r *UserRepository) RemoveLoanRef(ctx context.Context, userID primitive.ObjectID, loanID string) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var user models.User
	if err := r.Col.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("user not found: %w", errdefs.ErrNotFound)
		}
		return fmt.Errorf("fetching user: %w", err)
	}

	_, err := r.Col.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"loans":      removeFirstRef(user.LoanRefs, loanID),
		"updated_at": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("removing loan from user: %w", err)
	}
	return nil
}

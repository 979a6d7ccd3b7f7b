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

type BikeRepository struct {
	Col *mongo.Collection
}

func NewBikeRepository(col *mongo.Collection) *BikeRepository {
	return &BikeRepository{Col: col}
}

func (r *BikeRepository) List(ctx context.Context) ([]models.Bike, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	cursor, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fetching bikes: %w", err)
	}
	defer cursor.Close(ctx)

	bikes := []models.Bike{}
	if err = cursor.All(ctx, &bikes); err != nil {
		return nil, fmt.Errorf("decoding bikes: %w", err)
	}
	return bikes, nil
}

func (r *BikeRepository) Create(ctx context.Context, bike models.Bike) (models.Bike, error) {
	if bike.Brand == "" {
		return models.Bike{}, fmt.Errorf("brand is required: %w", errdefs.ErrInvalidArgument)
	}
	if bike.Model == "" {
		return models.Bike{}, fmt.Errorf("model is required: %w", errdefs.ErrInvalidArgument)
	}
	if bike.City == "" {
		return models.Bike{}, fmt.Errorf("city is required: %w", errdefs.ErrInvalidArgument)
	}
	if bike.Status == "" {
		bike.Status = models.StatusAvailable
	}

	bike.ID = primitive.NewObjectID()
	bike.Loan = nil // loans only enter through the loan service
	bike.CreatedAt = time.Now()
	bike.UpdatedAt = bike.CreatedAt

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if _, err := r.Col.InsertOne(ctx, bike); err != nil {
		return models.Bike{}, fmt.Errorf("inserting bike: %w", err)
	}
	return bike, nil
}

func (r *BikeRepository) Get(ctx context.Context, id string) (models.Bike, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Bike{}, fmt.Errorf("invalid bike id: %w", errdefs.ErrInvalidArgument)
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var bike models.Bike
	if err := r.Col.FindOne(ctx, bson.M{"_id": oid}).Decode(&bike); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Bike{}, fmt.Errorf("bike not found: %w", errdefs.ErrNotFound)
		}
		return models.Bike{}, fmt.Errorf("fetching bike: %w", err)
	}
	return bike, nil
}

func (r *BikeRepository) Update(ctx context.Context, id string, fields map[string]any) (models.Bike, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Bike{}, fmt.Errorf("invalid bike id: %w", errdefs.ErrInvalidArgument)
	}

	set := bson.M{}
	for field, value := range fields {
		key, ok := models.BikeUpdateKey(field)
		if !ok {
			return models.Bike{}, fmt.Errorf("field %q does not exist: %w", field, errdefs.ErrInvalidArgument)
		}
		set[key] = value
	}
	set["updated_at"] = time.Now()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := r.Col.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return models.Bike{}, fmt.Errorf("updating bike: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.Bike{}, fmt.Errorf("bike not found: %w", errdefs.ErrNotFound)
	}

	var bike models.Bike
	if err := r.Col.FindOne(ctx, bson.M{"_id": oid}).Decode(&bike); err != nil {
		return models.Bike{}, fmt.Errorf("fetching updated bike: %w", err)
	}
	return bike, nil
}

func (r *BikeRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid bike id: %w", errdefs.ErrInvalidArgument)
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting bike: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("bike not found: %w", errdefs.ErrNotFound)
	}
	return nil
}

// GetByLoanID resolves the bike currently carrying the given loan. Ended
// loans no longer live on any bike, so they come back not found.
func (r *BikeRepository) GetByLoanID(ctx context.Context, loanID string) (models.Bike, error) {
	oid, err := primitive.ObjectIDFromHex(loanID)
	if err != nil {
		return models.Bike{}, fmt.Errorf("invalid loan id: %w", errdefs.ErrInvalidArgument)
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var bike models.Bike
	if err := r.Col.FindOne(ctx, bson.M{"loan._id": oid}).Decode(&bike); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Bike{}, fmt.Errorf("loan not found: %w", errdefs.ErrNotFound)
		}
		return models.Bike{}, fmt.Errorf("fetching loan: %w", err)
	}
	return bike, nil
}

func (r *BikeRepository) ListInUse(ctx context.Context) ([]models.Bike, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	cursor, err := r.Col.Find(ctx, bson.M{"status": models.StatusInUse})
	if err != nil {
		return nil, fmt.Errorf("fetching bikes on loan: %w", err)
	}
	defer cursor.Close(ctx)

	bikes := []models.Bike{}
	if err = cursor.All(ctx, &bikes); err != nil {
		return nil, fmt.Errorf("decoding bikes on loan: %w", err)
	}
	return bikes, nil
}

// SetLoan writes status and loan sub-document together so the
// "loan present iff in_use" invariant cannot be split by a partial update.
// A nil loan puts the bike back to available.
func (r *BikeRepository) SetLoan(ctx context.Context, bikeID primitive.ObjectID, loan *models.Loan) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var update bson.M
	if loan != nil {
		update = bson.M{"$set": bson.M{
			"status":     models.StatusInUse,
			"loan":       loan,
			"updated_at": time.Now(),
		}}
	} else {
		update = bson.M{
			"$set":   bson.M{"status": models.StatusAvailable, "updated_at": time.Now()},
			"$unset": bson.M{"loan": ""},
		}
	}

	res, err := r.Col.UpdateByID(ctx, bikeID, update)
	if err != nil {
		return fmt.Errorf("writing bike loan state: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("bike not found: %w", errdefs.ErrNotFound)
	}
	return nil
}

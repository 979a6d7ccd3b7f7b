// Package service coordinates the loan lifecycle across the user and bike
// repositories. Starting or ending a loan touches two documents; each write
// is atomic on its own but the pair is not, so both paths compensate by
// reverting the bike when the user write fails.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/containerd/errdefs"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/feijonts/aps-5-api/internal/models"
	"github.com/feijonts/aps-5-api/internal/repository"
)

type LoanService struct {
	Users *repository.UserRepository
	Bikes *repository.BikeRepository
}

func NewLoanService(users *repository.UserRepository, bikes *repository.BikeRepository) *LoanService {
	return &LoanService{Users: users, Bikes: bikes}
}

// Start checks the bike out to the user. The bike must be available, judged
// by both the status flag and the absence of an embedded loan in case a
// previous partial write left them disagreeing.
func (s *LoanService) Start(ctx context.Context, userID, bikeID, startDate string) (models.LoanRecord, error) {
	if userID == "" {
		return models.LoanRecord{}, fmt.Errorf("userId is required: %w", errdefs.ErrInvalidArgument)
	}
	if bikeID == "" {
		return models.LoanRecord{}, fmt.Errorf("bikeId is required: %w", errdefs.ErrInvalidArgument)
	}

	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return models.LoanRecord{}, err
	}
	bike, err := s.Bikes.Get(ctx, bikeID)
	if err != nil {
		return models.LoanRecord{}, err
	}

	if bike.Status == models.StatusInUse || bike.Loan != nil {
		return models.LoanRecord{}, fmt.Errorf("bicycle already in use: %w", errdefs.ErrConflict)
	}

	// caller-supplied dates are stored verbatim
	if startDate == "" {
		startDate = time.Now().Format("2006-01-02")
	}

	loan := &models.Loan{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		StartDate: startDate,
	}

	if err := s.Bikes.SetLoan(ctx, bike.ID, loan); err != nil {
		return models.LoanRecord{}, err
	}
	if err := s.Users.AppendLoanRef(ctx, user.ID, loan.ID); err != nil {
		if revertErr := s.Bikes.SetLoan(ctx, bike.ID, nil); revertErr != nil {
			return models.LoanRecord{}, fmt.Errorf(
				"loan %s recorded on bike but not on user: %w", loan.ID.Hex(), errdefs.ErrUnavailable)
		}
		return models.LoanRecord{}, err
	}

	return models.LoanRecord{
		ID:        loan.ID,
		UserID:    user.ID,
		BikeID:    bike.ID,
		StartDate: startDate,
	}, nil
}

// Get resolves an active loan by its id. History is not retained: once a
// loan ends it is gone from the bike and cannot be fetched.
func (s *LoanService) Get(ctx context.Context, loanID string) (models.LoanRecord, error) {
	bike, err := s.Bikes.GetByLoanID(ctx, loanID)
	if err != nil {
		return models.LoanRecord{}, err
	}
	if bike.Loan == nil {
		return models.LoanRecord{}, fmt.Errorf("loan not found: %w", errdefs.ErrNotFound)
	}
	return models.LoanRecord{
		ID:        bike.Loan.ID,
		UserID:    bike.Loan.UserID,
		BikeID:    bike.ID,
		StartDate: bike.Loan.StartDate,
	}, nil
}

func (s *LoanService) ListActive(ctx context.Context) ([]models.LoanRecord, error) {
	bikes, err := s.Bikes.ListInUse(ctx)
	if err != nil {
		return nil, err
	}

	records := []models.LoanRecord{}
	for _, bike := range bikes {
		if bike.Loan == nil {
			continue
		}
		records = append(records, models.LoanRecord{
			ID:        bike.Loan.ID,
			UserID:    bike.Loan.UserID,
			BikeID:    bike.ID,
			StartDate: bike.Loan.StartDate,
		})
	}
	return records, nil
}

// End returns the bike to available and drops the loan reference from the
// borrowing user. A loan whose user no longer resolves is data corruption
// and surfaces as not found.
func (s *LoanService) End(ctx context.Context, loanID string) error {
	bike, err := s.Bikes.GetByLoanID(ctx, loanID)
	if err != nil {
		return err
	}
	if bike.Loan == nil {
		return fmt.Errorf("loan not found: %w", errdefs.ErrNotFound)
	}
	loan := bike.Loan

	user, err := s.Users.Get(ctx, loan.UserID.Hex())
	if err != nil {
		return err
	}

	if err := s.Bikes.SetLoan(ctx, bike.ID, nil); err != nil {
		return err
	}
	if err := s.Users.RemoveLoanRef(ctx, user.ID, loanID); err != nil {
		if revertErr := s.Bikes.SetLoan(ctx, bike.ID, loan); revertErr != nil {
			return fmt.Errorf(
				"loan %s cleared from bike but still on user: %w", loanID, errdefs.ErrUnavailable)
		}
		return err
	}
	return nil
}

package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const LoanEntity = "loan"

// Loan is the sub-document embedded in a bike while it is checked out.
type Loan struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	StartDate string             `bson:"start_date" json:"startDate"`
}

// LoanRecord is the external view of a loan, annotated with the bike that
// carries it.
type LoanRecord struct {
	ID        primitive.ObjectID `json:"id"`
	UserID    primitive.ObjectID `json:"userId"`
	BikeID    primitive.ObjectID `json:"bikeId"`
	StartDate string             `json:"startDate"`
}

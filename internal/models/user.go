package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const UserEntity = "user"

type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string               `bson:"name" json:"name"`
	TaxID     string               `bson:"tax_id" json:"taxId"`
	BirthDate string               `bson:"birth_date" json:"birthDate"`
	LoanRefs  []primitive.ObjectID `bson:"loans" json:"loanRefs"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

// userUpdatableFields maps the JSON field names a PUT may carry to their
// stored keys. Anything outside this set rejects the whole update.
var userUpdatableFields = map[string]string{
	"name":      "name",
	"taxId":     "tax_id",
	"birthDate": "birth_date",
}

func UserUpdateKey(field string) (string, bool) {
	key, ok := userUpdatableFields[field]
	return key, ok
}

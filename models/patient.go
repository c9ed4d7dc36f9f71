package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

// PatientSummary is the part of a patient document attached to invoices.
type PatientSummary struct {
	ID      primitive.ObjectID `json:"id" bson:"_id"`
	Name    string             `json:"name" bson:"name"`
	Email   string             `json:"email" bson:"email"`
	Phone   string             `json:"phone" bson:"phone"`
	Address *Address           `json:"address,omitempty" bson:"address,omitempty"`
}

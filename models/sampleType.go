package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SampleCategory string

const (
	CategoryBlood  SampleCategory = "blood"
	CategoryUrine  SampleCategory = "urine"
	CategoryStool  SampleCategory = "stool"
	CategorySaliva SampleCategory = "saliva"
	CategoryTissue SampleCategory = "tissue"
	CategorySwab   SampleCategory = "swab"
	CategoryCSF    SampleCategory = "csf"
	CategoryOther  SampleCategory = "other"
)

var SampleCategories = []SampleCategory{
	CategoryBlood, CategoryUrine, CategoryStool, CategorySaliva,
	CategoryTissue, CategorySwab, CategoryCSF, CategoryOther,
}

func (c SampleCategory) Valid() bool {
	for _, v := range SampleCategories {
		if c == v {
			return true
		}
	}
	return false
}

type SampleType struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Code        string             `json:"code" bson:"code"`
	Category    SampleCategory     `json:"category" bson:"category"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

type SampleTypeFilter struct {
	Category *SampleCategory
	IsActive *bool
	Search   string
}

type SampleTypeUpdate struct {
	Name        *string
	Code        *string
	Category    *SampleCategory
	Description *string
	IsActive    *bool
	UpdatedAt   time.Time
}

type CategoryCount struct {
	Category SampleCategory `json:"category" bson:"_id"`
	Count    int64          `json:"count" bson:"count"`
	Active   int64          `json:"active" bson:"active"`
}

type SampleTypeStats struct {
	TotalSampleTypes    int64           `json:"totalSampleTypes"`
	ActiveSampleTypes   int64           `json:"activeSampleTypes"`
	InactiveSampleTypes int64           `json:"inactiveSampleTypes"`
	ByCategory          []CategoryCount `json:"byCategory"`
}

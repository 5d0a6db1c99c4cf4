package handlers

import (
	"net/url"
	"strconv"

	"pawconnect/models"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// PetQuery is the set of optional listing filters, combined with logical AND.
type PetQuery struct {
	Type       string
	Breed      string
	City       string
	MinAge     *int
	MaxAge     *int
	Size       string
	Vaccinated bool
	Keyword    string
	Page       int
	Limit      int
}

// ParsePetQuery reads filters from the query string. Numeric values that fail
// to parse are treated as absent rather than rejected.
func ParsePetQuery(values url.Values) PetQuery {
	q := PetQuery{
		Type:       values.Get("type"),
		Breed:      values.Get("breed"),
		City:       values.Get("city"),
		MinAge:     optionalInt(values.Get("minAge")),
		MaxAge:     optionalInt(values.Get("maxAge")),
		Size:       values.Get("size"),
		Vaccinated: values.Get("vaccinated") == "true",
		Keyword:    values.Get("keyword"),
		Page:       defaultPage,
		Limit:      defaultLimit,
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}

	return q
}

// Filter builds the Mongo filter document. General listing reads only ever
// see available pets; owner reads go through GetMyPets instead.
func (q PetQuery) Filter() bson.M {
	filter := bson.M{"adoptionStatus": models.StatusAvailable}

	if q.Type != "" {
		filter["type"] = q.Type
	}
	if q.Breed != "" {
		filter["breed"] = ciRegex(q.Breed)
	}
	if q.City != "" {
		filter["location.city"] = ciRegex(q.City)
	}
	if q.MinAge != nil || q.MaxAge != nil {
		age := bson.M{}
		if q.MinAge != nil {
			age["$gte"] = *q.MinAge
		}
		if q.MaxAge != nil {
			age["$lte"] = *q.MaxAge
		}
		filter["age"] = age
	}
	if q.Size != "" {
		filter["size"] = q.Size
	}
	if q.Vaccinated {
		filter["healthInfo.vaccinated"] = true
	}
	if q.Keyword != "" {
		regex := ciRegex(q.Keyword)
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"breed": regex},
			bson.M{"description": regex},
			bson.M{"tags": regex},
		}
	}

	return filter
}

// Skip is the number of documents before the requested 1-based page.
func (q PetQuery) Skip() int64 {
	return int64((q.Page - 1) * q.Limit)
}

// Pages is ceil(total/limit); zero matches yield zero pages.
func Pages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func ciRegex(pattern string) bson.M {
	return bson.M{"$regex": pattern, "$options": "i"}
}

func optionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

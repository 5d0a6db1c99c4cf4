package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePetQuery_Defaults(t *testing.T) {
	q := ParsePetQuery(url.Values{})

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Nil(t, q.MinAge)
	assert.Nil(t, q.MaxAge)
	assert.False(t, q.Vaccinated)

	filter := q.Filter()
	assert.Equal(t, bson.M{"adoptionStatus": "available"}, filter)
}

func TestParsePetQuery_AllFilters(t *testing.T) {
	values := url.Values{
		"type":       {"dog"},
		"breed":      {"lab"},
		"city":       {"Mumbai"},
		"minAge":     {"2"},
		"maxAge":     {"7"},
		"size":       {"large"},
		"vaccinated": {"true"},
		"page":       {"3"},
		"limit":      {"5"},
	}

	q := ParsePetQuery(values)
	require.NotNil(t, q.MinAge)
	require.NotNil(t, q.MaxAge)
	assert.Equal(t, 2, *q.MinAge)
	assert.Equal(t, 7, *q.MaxAge)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 5, q.Limit)

	filter := q.Filter()
	assert.Equal(t, "available", filter["adoptionStatus"])
	assert.Equal(t, "dog", filter["type"])
	assert.Equal(t, bson.M{"$regex": "lab", "$options": "i"}, filter["breed"])
	assert.Equal(t, bson.M{"$regex": "Mumbai", "$options": "i"}, filter["location.city"])
	assert.Equal(t, bson.M{"$gte": 2, "$lte": 7}, filter["age"])
	assert.Equal(t, "large", filter["size"])
	assert.Equal(t, true, filter["healthInfo.vaccinated"])
}

func TestParsePetQuery_MinAgeOnly(t *testing.T) {
	q := ParsePetQuery(url.Values{"minAge": {"3"}})
	assert.Equal(t, bson.M{"$gte": 3}, q.Filter()["age"])
}

func TestParsePetQuery_BadNumbersTreatedAsAbsent(t *testing.T) {
	values := url.Values{
		"minAge": {"young"},
		"maxAge": {"3.5"},
		"page":   {"zero"},
		"limit":  {"-2"},
	}

	q := ParsePetQuery(values)
	assert.Nil(t, q.MinAge)
	assert.Nil(t, q.MaxAge)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)

	_, hasAge := q.Filter()["age"]
	assert.False(t, hasAge)
}

func TestParsePetQuery_VaccinatedOnlyWhenTrue(t *testing.T) {
	q := ParsePetQuery(url.Values{"vaccinated": {"1"}})
	assert.False(t, q.Vaccinated)

	_, has := q.Filter()["healthInfo.vaccinated"]
	assert.False(t, has)
}

func TestPetQueryFilter_Keyword(t *testing.T) {
	q := ParsePetQuery(url.Values{"keyword": {"friendly"}})

	or, ok := q.Filter()["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 4)

	regex := bson.M{"$regex": "friendly", "$options": "i"}
	assert.Contains(t, or, bson.M{"name": regex})
	assert.Contains(t, or, bson.M{"breed": regex})
	assert.Contains(t, or, bson.M{"description": regex})
	assert.Contains(t, or, bson.M{"tags": regex})
}

func TestPetQuerySkip(t *testing.T) {
	q := PetQuery{Page: 1, Limit: 10}
	assert.Equal(t, int64(0), q.Skip())

	q = PetQuery{Page: 3, Limit: 10}
	assert.Equal(t, int64(20), q.Skip())

	q = PetQuery{Page: 5, Limit: 7}
	assert.Equal(t, int64(28), q.Skip())
}

func TestPages(t *testing.T) {
	assert.Equal(t, int64(0), Pages(0, 10))
	assert.Equal(t, int64(1), Pages(1, 10))
	assert.Equal(t, int64(1), Pages(10, 10))
	assert.Equal(t, int64(2), Pages(11, 10))
	assert.Equal(t, int64(3), Pages(25, 10))
	assert.Equal(t, int64(0), Pages(25, 0))
}

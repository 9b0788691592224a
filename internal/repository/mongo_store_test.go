package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToBSONDropsIDAndKeepsShape(t *testing.T) {
	body, err := toBSON(map[string]interface{}{
		"_id":             "ignored",
		"name":            "Ayesha",
		"enrolledCourses": []string{"a1", "a2"},
	})
	require.NoError(t, err)

	keys := make([]string, 0, len(body))
	for _, elem := range body {
		keys = append(keys, elem.Key)
	}
	assert.ElementsMatch(t, []string{"name", "enrolledCourses"}, keys)
}

func TestFromBSONRendersPlainJSON(t *testing.T) {
	raw, err := bson.Marshal(bson.D{
		{Key: "_id", Value: "stu-1"},
		{Key: "name", Value: "Ayesha"},
		{Key: "results", Value: bson.A{bson.D{{Key: "semester", Value: "1"}, {Key: "gpa", Value: 3.5}}}},
	})
	require.NoError(t, err)

	data, err := fromBSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"stu-1","name":"Ayesha","results":[{"semester":"1","gpa":3.5}]}`, string(data))
}

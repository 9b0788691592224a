package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()
	var dest map[string]interface{}
	err := store.Get(context.Background(), "students", "nobody", &dest)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestMemoryStoreArrayUnionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "students", "stu-1", map[string]interface{}{"name": "Ayesha", "enrolledCourses": []string{"a1"}}))

	require.NoError(t, store.ArrayUnion(ctx, "students", "stu-1", "enrolledCourses", "a2", "a1"))
	require.NoError(t, store.ArrayUnion(ctx, "students", "stu-1", "enrolledCourses", "a2"))

	var doc struct {
		Name            string   `json:"name"`
		EnrolledCourses []string `json:"enrolledCourses"`
	}
	require.NoError(t, store.Get(ctx, "students", "stu-1", &doc))
	assert.Equal(t, "Ayesha", doc.Name)
	assert.Equal(t, []string{"a1", "a2"}, doc.EnrolledCourses)
}

func TestMemoryStoreArrayUnionCreatesMissingField(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "students", "stu-1", map[string]interface{}{"name": "Ayesha"}))

	require.NoError(t, store.ArrayUnion(ctx, "students", "stu-1", "withdrawCourses", "a9"))

	var doc struct {
		WithdrawCourses []string `json:"withdrawCourses"`
	}
	require.NoError(t, store.Get(ctx, "students", "stu-1", &doc))
	assert.Equal(t, []string{"a9"}, doc.WithdrawCourses)
}

func TestMemoryStoreArrayUnionRejectsNonArray(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "students", "stu-1", map[string]interface{}{"enrolledCourses": "a1"}))

	err := store.ArrayUnion(ctx, "students", "stu-1", "enrolledCourses", "a2")
	assert.Error(t, err)
}

func TestMemoryStoreUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "students", "stu-1", map[string]interface{}{"name": "Ayesha", "city": "Lahore"}))

	require.NoError(t, store.Update(ctx, "students", "stu-1", map[string]interface{}{"city": "Karachi"}))
	assert.ErrorIs(t, store.Update(ctx, "students", "missing", map[string]interface{}{"city": "x"}), ErrDocumentNotFound)

	var doc map[string]string
	require.NoError(t, store.Get(ctx, "students", "stu-1", &doc))
	assert.Equal(t, map[string]string{"name": "Ayesha", "city": "Karachi"}, doc)
}

func TestMemoryStoreListOrdersByID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "courses", "c2", map[string]string{"name": "B"}))
	require.NoError(t, store.Put(ctx, "courses", "c1", map[string]string{"name": "A"}))

	docs, err := store.List(ctx, "courses")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "c1", docs[0].ID)
	assert.JSONEq(t, `{"name":"A"}`, string(docs[0].Data))

	empty, err := store.List(ctx, "nothing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLoadFixture(t *testing.T) {
	fixture, err := ReadFixture(strings.NewReader(`{
		"courses": {"c1": {"name": "Calculus"}},
		"classes": {"k1": {"name": "BSCS-5A"}, "k2": {"name": "BSCS-5B"}}
	}`))
	require.NoError(t, err)

	store := NewMemoryStore()
	count, err := LoadFixture(context.Background(), store, fixture)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var class struct {
		Name string `json:"name"`
	}
	require.NoError(t, store.Get(context.Background(), "classes", "k2", &class))
	assert.Equal(t, "BSCS-5B", class.Name)
}

func TestReadFixtureRejectsMalformedInput(t *testing.T) {
	_, err := ReadFixture(strings.NewReader(`{"courses": [`))
	assert.Error(t, err)
}

package appwrite

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/domain"
)

func backendUser() domain.User {
	return domain.User{ID: "usr123", Email: "lifter@example.com"}
}

func TestNormalizeDocument(t *testing.T) {
	doc := json.RawMessage(`{
		"$id": "doc1",
		"$createdAt": "2026-01-02T10:00:00.000+00:00",
		"$updatedAt": "2026-01-03T10:00:00.000+00:00",
		"$permissions": ["read(\"user:usr123\")"],
		"$collectionId": "workouts",
		"$databaseId": "main",
		"name": "Push Day"
	}`)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(normalizeDocument(doc), &fields))

	assert.Equal(t, "doc1", fields["id"])
	assert.Equal(t, "Push Day", fields["name"])
	assert.Contains(t, fields, "created")
	assert.Contains(t, fields, "updated")
	for key := range fields {
		assert.NotContains(t, key, "$")
	}
}

func TestFilterToQueries(t *testing.T) {
	queries := filterToQueries(`user = "usr123" && name ~ "push" && startedAt >= "2026-01-01T00:00:00Z"`)
	require.Len(t, queries, 3)
	assert.Equal(t, `equal("user", ["usr123"])`, queries[0])
	assert.Equal(t, `search("name", ["push"])`, queries[1])
	assert.Equal(t, `greaterThanEqual("startedAt", ["2026-01-01T00:00:00Z"])`, queries[2])

	assert.Nil(t, filterToQueries(""))
}

func TestFilterToQueries_QuotedValues(t *testing.T) {
	// A conjunction inside a quoted value must not split the clause.
	queries := filterToQueries(`user = "usr123" && name ~ "legs && arms"`)
	require.Len(t, queries, 2)
	assert.Equal(t, `equal("user", ["usr123"])`, queries[0])
	assert.Equal(t, `search("name", ["legs && arms"])`, queries[1])

	// Escaped quotes survive, including at the end of the value.
	queries = filterToQueries(`name ~ "leg \"day\""`)
	require.Len(t, queries, 1)
	assert.Equal(t, `search("name", ["leg \"day\""])`, queries[0])

	// Operator text inside a quoted value is not the clause operator.
	queries = filterToQueries(`name = "a ~ b"`)
	require.Len(t, queries, 1)
	assert.Equal(t, `equal("name", ["a ~ b"])`, queries[0])

	// A trailing backslash stays escaped in the translated query.
	queries = filterToQueries(`name = "dir\\"`)
	require.Len(t, queries, 1)
	assert.Equal(t, `equal("name", ["dir\\"])`, queries[0])
}

func TestSortToQuery(t *testing.T) {
	assert.Equal(t, `orderDesc("created")`, sortToQuery("-created"))
	assert.Equal(t, `orderAsc("name")`, sortToQuery("+name"))
	assert.Equal(t, `orderAsc("name")`, sortToQuery("name"))
	assert.Empty(t, sortToQuery(""))
}

func TestList_PaginationAndHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/databases/main/collections/workouts/documents", r.URL.Path)
		assert.Equal(t, "periolifts", r.Header.Get("X-Appwrite-Project"))
		assert.Equal(t, "session-secret", r.Header.Get("X-Appwrite-Session"))

		queries := r.URL.Query()["queries[]"]
		assert.Contains(t, queries, "limit(30)")
		assert.Contains(t, queries, "offset(30)") // page 2

		_ = json.NewEncoder(w).Encode(map[string]any{
			"total": 31,
			"documents": []map[string]any{
				{"$id": "w1", "name": "Push Day"},
			},
		})
	}))
	defer server.Close()

	store := backend.NewAuthStore()
	store.Save("session-secret", backendUser())
	client := NewClient(server.URL+"/v1", "periolifts", "main", &http.Client{Timeout: 5 * time.Second}, store)

	list, err := client.List(context.Background(), backend.CollectionWorkouts, backend.ListOptions{
		Page: 2, PerPage: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 31, list.TotalItems)
	assert.Equal(t, 2, list.TotalPages)
	require.Len(t, list.Items, 1)

	// Documents come out normalized.
	var doc map[string]any
	require.NoError(t, json.Unmarshal(list.Items[0], &doc))
	assert.Equal(t, "w1", doc["id"])
}

package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/domain"
)

// fakeClient implements backend.Client in memory and counts every remote
// call, so tests can assert that validation failures never hit the network.
type fakeClient struct {
	store *backend.AuthStore

	listResponse   *backend.RecordList
	recordResponse json.RawMessage
	err            error

	listCalls   int
	getCalls    int
	createCalls int
	updateCalls int
	deleteCalls int

	lastCollection string
	lastListOpts   backend.ListOptions
	lastBody       any
}

var _ backend.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		store:        backend.NewAuthStore(),
		listResponse: &backend.RecordList{},
	}
}

func newAuthedFakeClient() *fakeClient {
	client := newFakeClient()
	client.store.Save("opaque-token", domain.User{ID: "usr123", Email: "lifter@example.com"})
	return client
}

func (f *fakeClient) networkCalls() int {
	return f.listCalls + f.getCalls + f.createCalls + f.updateCalls + f.deleteCalls
}

func (f *fakeClient) AuthWithPassword(ctx context.Context, identity, password string) (*backend.AuthResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	user := domain.User{ID: "usr123", Email: identity}
	f.store.Save("opaque-token", user)
	return &backend.AuthResult{Token: "opaque-token", User: user}, nil
}

func (f *fakeClient) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: "usr456", Email: email, Name: name}, nil
}

func (f *fakeClient) Logout() {
	f.store.Clear()
}

func (f *fakeClient) List(ctx context.Context, collection string, opts backend.ListOptions) (*backend.RecordList, error) {
	f.listCalls++
	f.lastCollection = collection
	f.lastListOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.listResponse, nil
}

func (f *fakeClient) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	f.getCalls++
	f.lastCollection = collection
	if f.err != nil {
		return nil, f.err
	}
	return f.recordResponse, nil
}

func (f *fakeClient) Create(ctx context.Context, collection string, body any) (json.RawMessage, error) {
	f.createCalls++
	f.lastCollection = collection
	f.lastBody = body
	if f.err != nil {
		return nil, f.err
	}
	return f.recordResponse, nil
}

func (f *fakeClient) Update(ctx context.Context, collection, id string, body any) (json.RawMessage, error) {
	f.updateCalls++
	f.lastCollection = collection
	f.lastBody = body
	if f.err != nil {
		return nil, f.err
	}
	return f.recordResponse, nil
}

func (f *fakeClient) Delete(ctx context.Context, collection, id string) error {
	f.deleteCalls++
	f.lastCollection = collection
	return f.err
}

func (f *fakeClient) AuthStore() *backend.AuthStore {
	return f.store
}

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func rawItems(t *testing.T, values ...any) []json.RawMessage {
	t.Helper()
	items := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		items = append(items, mustMarshal(t, v))
	}
	return items
}

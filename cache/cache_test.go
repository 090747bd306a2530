package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name     string `json:"name"`
	Approved bool   `json:"approved"`
}

type ctxKey struct{}

// fakeStore stands in for the server's Redis helpers.
type fakeStore struct {
	data     map[string][]byte
	contexts []*gin.Context
	failDel  map[string]bool
}

func newFakeCache() (*CoreCache, *fakeStore) {
	f := &fakeStore{data: map[string][]byte{}, failDel: map[string]bool{}}
	return &CoreCache{
		get: func(c *gin.Context, key string, dest interface{}) (bool, error) {
			f.contexts = append(f.contexts, c)
			raw, ok := f.data[key]
			if !ok {
				return false, nil
			}
			return true, json.Unmarshal(raw, dest)
		},
		set: func(c *gin.Context, key string, value interface{}) error {
			f.contexts = append(f.contexts, c)
			raw, err := json.Marshal(value)
			f.data[key] = raw
			return err
		},
		del: func(c *gin.Context, key string) error {
			f.contexts = append(f.contexts, c)
			if f.failDel[key] {
				return errors.New("redis down")
			}
			delete(f.data, key)
			return nil
		},
	}, f
}

func TestCoreCache_SetGet(t *testing.T) {
	c, _ := newFakeCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, DoctorsKey, []entry{{Name: "a", Approved: true}}))

	var got []entry
	ok, err := c.Get(ctx, DoctorsKey, &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []entry{{Name: "a", Approved: true}}, got)
}

func TestCoreCache_Miss(t *testing.T) {
	c, _ := newFakeCache()

	var got []entry
	ok, err := c.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCoreCache_DeleteEveryKey(t *testing.T) {
	c, f := newFakeCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, DoctorsKey, entry{Name: "a"}))
	require.NoError(t, c.Set(ctx, AppointmentsKey, entry{Name: "b"}))
	require.NoError(t, c.Set(ctx, "DOCTOR:1", entry{Name: "c"}))
	f.failDel[DoctorsKey] = true

	err := c.Delete(ctx, DoctorsKey, AppointmentsKey, "DOCTOR:1")
	assert.Error(t, err)
	assert.Contains(t, f.data, DoctorsKey)
	assert.NotContains(t, f.data, AppointmentsKey)
	assert.NotContains(t, f.data, "DOCTOR:1")

	require.NoError(t, c.Delete(ctx))
}

func TestCoreCache_RequestContextPassedThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, f := newFakeCache()
	gc, _ := gin.CreateTestContext(httptest.NewRecorder())
	gc.Request = httptest.NewRequest("GET", "/admin/doctors", nil)

	require.NoError(t, c.Set(gc, DoctorsKey, entry{Name: "a"}))
	require.Len(t, f.contexts, 1)
	assert.Same(t, gc, f.contexts[0])
}

func TestGinContext_WrapsPlainContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "job")

	gc := ginContext(ctx)
	require.NotNil(t, gc.Request)
	assert.Equal(t, "job", gc.Request.Context().Value(ctxKey{}))
}

func TestNoopCache(t *testing.T) {
	var c Cache = NoopCache{}
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", 1))
	var v int
	ok, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Delete(ctx, "k"))
}

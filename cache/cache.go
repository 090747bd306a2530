// Package cache keeps snapshots of admin list reads in the shared Redis
// connection the server opens when caching is enabled.
package cache

import (
	"context"
	"errors"
	"net/http"

	redis "github.com/KanapuramVaishnavi/Core/config/redis"
	"github.com/gin-gonic/gin"
)

const (
	DoctorsKey      = "doctors:all"
	AppointmentsKey = "appointments:all"
)

type Cache interface {
	// Get reports false when the key is absent.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// CoreCache goes through the server's cache helpers, so per-entity keys such
// as util.DoctorKey+id are the same entries other services read and write.
type CoreCache struct {
	get func(c *gin.Context, key string, dest interface{}) (bool, error)
	set func(c *gin.Context, key string, value interface{}) error
	del func(c *gin.Context, key string) error
}

func NewCoreCache() *CoreCache {
	return &CoreCache{
		get: func(c *gin.Context, key string, dest interface{}) (bool, error) {
			return redis.GetCache(c, key, dest)
		},
		set: func(c *gin.Context, key string, value interface{}) error {
			return redis.SetCache(c, key, value)
		},
		del: func(c *gin.Context, key string) error {
			return redis.DeleteCache(c, key)
		},
	}
}

func (c *CoreCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return c.get(ginContext(ctx), key, dest)
}

func (c *CoreCache) Set(ctx context.Context, key string, value interface{}) error {
	return c.set(ginContext(ctx), key, value)
}

// Delete attempts every key and reports all failures together.
func (c *CoreCache) Delete(ctx context.Context, keys ...string) error {
	gc := ginContext(ctx)
	var errs []error
	for _, key := range keys {
		if err := c.del(gc, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Jobs and migrations run outside a request; they get a bare gin context
// carrying their own context.
func ginContext(ctx context.Context) *gin.Context {
	if gc, ok := ctx.(*gin.Context); ok {
		return gc
	}
	if ctx == nil {
		ctx = context.Background()
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
	return &gin.Context{Request: req}
}

// NoopCache is used when caching is disabled.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NoopCache) Set(context.Context, string, interface{}) error        { return nil }
func (NoopCache) Delete(context.Context, ...string) error               { return nil }

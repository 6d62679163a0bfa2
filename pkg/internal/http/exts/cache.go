package exts

import (
	"context"
	"time"

	localCache "git.solsynth.dev/hypernet/yatube/pkg/internal/cache"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// CachePage serves successful GET responses from the page cache for ttl,
// keyed by the request URL. Writes made in between are not visible until
// the entry expires.
func CachePage(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet || localCache.S == nil {
			return c.Next()
		}

		cacheManager := cache.New[any](localCache.S)
		ctx := context.Background()
		key := localCache.PageKey(c.OriginalURL())

		if raw, err := cacheManager.Get(ctx, key); err == nil {
			if page, ok := raw.(localCache.Page); ok {
				c.Set(fiber.HeaderContentType, page.ContentType)
				c.Set("X-Cache", "HIT")
				return c.Status(page.Status).Send(page.Body)
			}
		}

		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}

		page := localCache.Page{
			Status:      c.Response().StatusCode(),
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		}
		if err := cacheManager.Set(
			ctx,
			key,
			page,
			store.WithExpiration(ttl),
			store.WithCost(int64(len(page.Body))),
		); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Unable to cache page...")
		} else {
			localCache.Wait()
		}
		c.Set("X-Cache", "MISS")
		return nil
	}
}

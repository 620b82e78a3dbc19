package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix   = "post:%d"
	PostsListPrefix = "posts:first"
)

const (
	PostTTL = 30 * time.Minute
	ListTTL = 1 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// PostsListKey is the cache key for the first page of the posts list.
func PostsListKey() string {
	return PostsListPrefix
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostsListKey())
}

package cache_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/noticegen/pkg/cache"
)

func ExampleMemoryCache() {
	c := cache.NewMemoryCache()
	fetches := 0
	fetch := func(context.Context) (string, bool) {
		fetches++
		return "MIT License", true
	}

	ctx := context.Background()
	key := "https://opensource.org/licenses/MIT"
	c.GetOrCreate(ctx, cache.KeyTypeURL, key, fetch)
	text, ok := c.GetOrCreate(ctx, cache.KeyTypeURL, key, fetch)

	fmt.Println(text, ok)
	fmt.Println("Fetches:", fetches)
	// Output:
	// MIT License true
	// Fetches: 1
}

package redis

const (
	// KeyPrefixOutline is the prefix for per-collection outline keys
	KeyPrefixOutline = "pavilion:outline:"
	// KeyPrefixArticle is the prefix for rendered article cache keys
	KeyPrefixArticle = "pavilion:article:"
	// KeyAllArticles is the key for the set of cached article IDs
	KeyAllArticles = "pavilion:articles:all"
	// KeyViews is the hash holding per-entry view counters
	KeyViews = "pavilion:views"
)

// OutlineKey returns the Redis key for a collection's outline.
func OutlineKey(kind string) string {
	return KeyPrefixOutline + kind
}

// ArticleKey returns the Redis key for a cached rendered article.
func ArticleKey(id string) string {
	return KeyPrefixArticle + id
}

// AllArticlesKey returns the key for the set of cached article IDs.
func AllArticlesKey() string {
	return KeyAllArticles
}

// ViewsKey returns the key of the view counter hash.
func ViewsKey() string {
	return KeyViews
}

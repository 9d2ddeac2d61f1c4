// Package tokenstore holds the durable key/value backends for the bearer
// token and the cached user blob.
package tokenstore

// DefaultPrefix namespaces both keys.
const DefaultPrefix = "curato:"

// Keys are the two storage keys every backend writes.
type Keys struct {
	Token string
	User  string
}

// NewKeys builds the keys under prefix. An empty prefix uses DefaultPrefix.
func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Keys{
		Token: prefix + "token",
		User:  prefix + "user",
	}
}

package driven

// ConfigStore holds settings under dot-notation keys such as
// "backend.base_url". Typed getters return the zero value when a key is
// missing or cannot be converted.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// Set stores and persists a value.
	Set(key string, value any) error

	// Path locates the backing file, or a marker for stores without one.
	Path() string
}

package interfaces

// KeyValueStore is the host settings store. Getters report absence with false.
// Setters are assumed to succeed locally; Flush is best effort.
type KeyValueStore interface {
	GetBool(key string) (bool, bool)
	GetInt(key string) (int, bool)
	GetDouble(key string) (float64, bool)
	GetString(key string) (string, bool)
	SetBool(key string, value bool)
	SetInt(key string, value int)
	SetDouble(key string, value float64)
	SetString(key string, value string)
	Flush() error
}

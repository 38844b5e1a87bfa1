package config

// Default paths for the two embedded stores
const (
	// DefaultUserDatabasePath is the default path for the per-user
	// read/write database (favorites, mistakes, test history).
	DefaultUserDatabasePath = "./userdata.db"

	// DefaultDictionaryPath is the default path for the read-only
	// reference dictionary database.
	DefaultDictionaryPath = "./dictionary.db"
)

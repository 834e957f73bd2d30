package keyValueDb

// Backend names accepted by the configuration.
const (
	BackendMemory  = "memory"
	BackendPebble  = "pebble"
	BackendLevelDB = "leveldb"
)

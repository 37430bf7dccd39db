package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}

// Well-known configuration keys.
const (
	ConfigKeyDocsDir           = "ingest.docs_dir"
	ConfigKeyGlob              = "ingest.glob"
	ConfigKeyChunkSize         = "ingest.chunk_size"
	ConfigKeyChunkOverlap      = "ingest.chunk_overlap"
	ConfigKeyIndexDir          = "index.dir"
	ConfigKeyEmbeddingProvider = "embedding.provider"
	ConfigKeyEmbeddingModel    = "embedding.model"
	ConfigKeyEmbeddingBaseURL  = "embedding.base_url"
	ConfigKeyLLMProvider       = "llm.provider"
	ConfigKeyLLMModel          = "llm.model"
	ConfigKeyLLMBaseURL        = "llm.base_url"
	ConfigKeyServePort         = "serve.port"
	ConfigKeyFrontendURL       = "serve.frontend_url"
	ConfigKeyTopK              = "retrieval.top_k"
)

package config

const (
	// DefaultConfigFile is the JSON configuration file read at startup
	DefaultConfigFile = "configuration/config.json"
	// DefaultEnvFile is the dotenv file loaded before environment overrides
	DefaultEnvFile = ".env"
	// EnvPrefix prefixes environment variables overriding config keys
	EnvPrefix = "INSECTICIDE_"

	DefaultStoreDir         = "storage"
	DefaultConfigStore      = StoreLevelDB
	DefaultConfigDBFileName = "config.db"
	DefaultResultLog        = ResultLogJSON
	DefaultReportsFileName  = "results.jsonl"
	DefaultTestDir          = "tests"
	DefaultLogDir           = "logs"
	DefaultLogLevel         = "info"
)

// Config store backends
const (
	StoreLevelDB = "leveldb"
	StoreRedis   = "redis"
)

// Result log backends
const (
	ResultLogJSON     = "json"
	ResultLogMySQL    = "mysql"
	ResultLogPostgres = "postgres"
)

// Configuration keys
const (
	KeyStoreDir         = "store_dir"
	KeyConfigStore      = "config_store"
	KeyConfigDBFileName = "config_db_file_name"
	KeyRedisAddr        = "redis_addr"
	KeyResultLog        = "result_log"
	KeyReportsFileName  = "reports_file_name"
	KeyResultDSN        = "result_dsn"
	KeyTestDir          = "test_dir"
	KeyLogDir           = "log_dir"
	KeyLogLevel         = "log_level"
	KeyMetricsFile      = "metrics_file"
)

// DefaultPathsToIgnore are the directories never scanned for suite manifests
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"storage",
	"logs",
	"configuration",
}

// Defaults returns the default value of every known key
func Defaults() map[string]string {
	return map[string]string{
		KeyStoreDir:         DefaultStoreDir,
		KeyConfigStore:      DefaultConfigStore,
		KeyConfigDBFileName: DefaultConfigDBFileName,
		KeyRedisAddr:        "",
		KeyResultLog:        DefaultResultLog,
		KeyReportsFileName:  DefaultReportsFileName,
		KeyResultDSN:        "",
		KeyTestDir:          DefaultTestDir,
		KeyLogDir:           DefaultLogDir,
		KeyLogLevel:         DefaultLogLevel,
		KeyMetricsFile:      "",
	}
}

package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"debug"`

	// Storage settings. STORAGE_BACKEND selects where the three collection
	// documents live: file, sqlite, postgres, s3 or memory.
	StorageBackend  string `envconfig:"STORAGE_BACKEND" default:"file"`
	DataDir         string `envconfig:"DATA_DIR" default:"database"`
	CoursesDocument string `envconfig:"COURSES_DOCUMENT" default:"cours.json"`
	ModulesDocument string `envconfig:"MODULES_DOCUMENT" default:"modules.json"`
	LessonsDocument string `envconfig:"LESSONS_DOCUMENT" default:"lessons.json"`

	// SQLite document backend
	SQLitePath string `envconfig:"SQLITE_PATH" default:"database/documents.db"`

	// Postgres document backend
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING"`
	DBConnectionSecret string `envconfig:"DB_CONNECTION_SECRET"`

	// S3 document backend
	S3URL             string `envconfig:"S3_URL"`
	S3Bucket          string `envconfig:"S3_BUCKET"`
	S3Region          string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey       string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey       string `envconfig:"S3_SECRET_KEY"`
	S3SecretKeySecret string `envconfig:"S3_SECRET_KEY_SECRET"`
	S3Prefix          string `envconfig:"S3_PREFIX"`

	// Google Cloud settings for change events and secrets
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID"`
	GCPCredentialsFile string `envconfig:"GCP_CREDENTIALS_FILE"`
	PubSubTopic        string `envconfig:"PUBSUB_TOPIC"`
	PubSubEmulatorHost string `envconfig:"PUBSUB_EMULATOR_HOST"`

	// HTTP settings
	JWTSecret          string   `envconfig:"JWT_SECRET"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DocumentNames returns the backend names of the course, module and lesson
// documents.
func (c *Config) DocumentNames() (courses, modules, lessons string) {
	return c.CoursesDocument, c.ModulesDocument, c.LessonsDocument
}

// UsesSecretManager reports whether any credential must be fetched from
// Secret Manager before the storage backend can be opened.
func (c *Config) UsesSecretManager() bool {
	return c.DBConnectionSecret != "" || c.S3SecretKeySecret != ""
}

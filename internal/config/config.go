// Package config resolves all process configuration at startup into one
// explicit Config value. Nothing outside this package reads the raw
// environment; components receive the resolved struct through their
// constructors.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the resolved process configuration.
type Config struct {
	HTTPPort  string
	APIKey    string
	LogLevel  string
	LogFormat string
	// CORSAllowedOrigins lists the origins the HTTP layer accepts; "*"
	// allows any origin.
	CORSAllowedOrigins []string

	Storage Storage
	Jobs    Jobs
	Worker  Worker
	Engine  Engine
	Retry   Retry
}

// Storage selects and parameterizes the object-storage backend.
type Storage struct {
	// Provider is one of: localfs, minio, s3, gcs.
	Provider string
	Bucket   string
	// KeyPrefix is prepended to every object key (e.g. "titled_videos/").
	KeyPrefix string

	// localfs
	LocalRoot     string
	PublicBaseURL string

	// minio
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioSecure    bool

	// s3
	S3Region       string
	S3UsePathStyle bool

	// gcs
	GCPProjectID string
}

// Jobs selects the async job-store backend.
type Jobs struct {
	// Backend is one of: memory, redis, postgres.
	Backend     string
	RedisAddr   string
	PostgresURL string
	// TTL bounds how long finished async jobs stay queryable.
	TTL time.Duration
}

// Worker bounds concurrent transcode work.
type Worker struct {
	// Size is the number of jobs allowed to run at once.
	Size int
	// AdmitWait is how long a request may wait for a slot before being
	// rejected with backpressure.
	AdmitWait time.Duration
	// JobTimeout is the wall-clock budget for a single job.
	JobTimeout time.Duration
}

// Engine locates the external transcoding binaries and working directories.
type Engine struct {
	FFmpegPath  string
	FFprobePath string
	FontDir     string
	TempDir     string
}

// Retry bounds the transient-failure retry policy for engine and storage
// steps. Layout computation is deterministic and never retried.
type Retry struct {
	Attempts int
	Backoff  time.Duration
}

// Load builds a Config from the environment. A .env file in the working
// directory is honored when present, matching local development setups.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		APIKey:             os.Getenv("API_KEY"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		CORSAllowedOrigins: getEnvCSV("CORS_ALLOWED_ORIGINS", []string{"*"}),
		Storage: Storage{
			Provider:       getEnv("STORAGE_PROVIDER", "localfs"),
			Bucket:         getEnv("STORAGE_BUCKET", "mediaforge"),
			KeyPrefix:      getEnv("STORAGE_KEY_PREFIX", "titled_videos/"),
			LocalRoot:      getEnv("STORAGE_LOCAL_ROOT", "/var/lib/mediaforge"),
			PublicBaseURL:  strings.TrimRight(os.Getenv("STORAGE_PUBLIC_BASE_URL"), "/"),
			MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
			MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
			MinioSecure:    getEnvBool("MINIO_SECURE", true),
			S3Region:       os.Getenv("S3_REGION"),
			S3UsePathStyle: getEnvBool("S3_USE_PATH_STYLE", false),
			GCPProjectID:   os.Getenv("GCP_PROJECT_ID"),
		},
		Jobs: Jobs{
			Backend:     getEnv("JOB_STORE", "memory"),
			RedisAddr:   os.Getenv("REDIS_ADDR"),
			PostgresURL: os.Getenv("DATABASE_URL"),
			TTL:         getEnvDuration("JOB_TTL", 24*time.Hour),
		},
		Worker: Worker{
			Size:       getEnvInt("WORKER_POOL_SIZE", runtime.NumCPU()),
			AdmitWait:  getEnvDuration("WORKER_ADMIT_WAIT", 5*time.Second),
			JobTimeout: getEnvDuration("JOB_TIMEOUT", 10*time.Minute),
		},
		Engine: Engine{
			FFmpegPath:  getEnv("FFMPEG_PATH", "ffmpeg"),
			FFprobePath: getEnv("FFPROBE_PATH", "ffprobe"),
			FontDir:     getEnv("FONT_DIR", "/usr/share/fonts/truetype/thai-tlwg"),
			TempDir:     getEnv("WORK_TMP_DIR", os.TempDir()),
		},
		Retry: Retry{
			Attempts: getEnvInt("RETRY_ATTEMPTS", 3),
			Backoff:  getEnvDuration("RETRY_BACKOFF", 500*time.Millisecond),
		},
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config: API_KEY is required")
	}
	switch c.Storage.Provider {
	case "localfs", "minio", "s3", "gcs":
	default:
		return fmt.Errorf("config: unknown storage provider %q", c.Storage.Provider)
	}
	switch c.Jobs.Backend {
	case "memory":
	case "redis":
		if c.Jobs.RedisAddr == "" {
			return fmt.Errorf("config: REDIS_ADDR is required for the redis job store")
		}
	case "postgres":
		if c.Jobs.PostgresURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the postgres job store")
		}
	default:
		return fmt.Errorf("config: unknown job store backend %q", c.Jobs.Backend)
	}
	if c.Worker.Size < 1 {
		return fmt.Errorf("config: WORKER_POOL_SIZE must be at least 1")
	}
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("config: RETRY_ATTEMPTS must be at least 1")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvCSV(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return strings.EqualFold(v, "true") || v == "1"
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

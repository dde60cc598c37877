package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
)

const (
	BusKafka = "kafka"
	BusNATS  = "nats"
	BusLog   = "log"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	MigrateOnStart bool
	LogMode        string

	BusProvider       string
	KafkaBrokers      []string
	KafkaTopic        string
	NatsURL           string
	NatsSubjectPrefix string
	PublishTimeout    time.Duration

	// RedisAddr is optional. Without it the debtor cache is memory only.
	RedisAddr      string
	DebtorCacheTTL time.Duration

	// CarrierAPIKey is optional. Without it delivery is simulated from the shipping date.
	CarrierAPIKey   string
	CarrierBaseURL  string
	CarrierTimeout  time.Duration
	SyncConcurrency int

	CourierSyncSpec   string
	DebtorRefreshSpec string
	ReconcileSpec     string
	JobTimeout        time.Duration
	BatchItemTimeout  time.Duration
}

// LoadConfig parses args for --env-file, loads that file into the
// environment and reads the configuration from it. A missing default .env is
// not an error, a missing file named explicitly is.
func LoadConfig(name string, args []string) (Config, error) {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	envFile := flagSet.String("env-file", ".env", "path to the dotenv file")
	if err := flagSet.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(*envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || flagSet.Changed("env-file") {
			return Config{}, fmt.Errorf("load %s: %w", *envFile, err)
		}
	}

	return ConfigFromEnv()
}

// ConfigFromEnv reads the configuration from environment variables and validates it.
func ConfigFromEnv() (Config, error) {
	var parseErrs []error

	config := Config{
		HTTPPort:   getEnv("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true, &parseErrs),
		LogMode:        getEnv("LOG_MODE", "production"),

		BusProvider:       getEnv("BUS_PROVIDER", BusLog),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "farmdesk.events"),
		NatsURL:           os.Getenv("NATS_URL"),
		NatsSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "farmdesk"),
		PublishTimeout:    getEnvDuration("PUBLISH_TIMEOUT", 5*time.Second, &parseErrs),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		DebtorCacheTTL: getEnvDuration("DEBTOR_CACHE_TTL", 10*time.Minute, &parseErrs),

		CarrierAPIKey:   os.Getenv("CARRIER_API_KEY"),
		CarrierBaseURL:  os.Getenv("CARRIER_BASE_URL"),
		CarrierTimeout:  getEnvDuration("CARRIER_TIMEOUT", 10*time.Second, &parseErrs),
		SyncConcurrency: getEnvInt("SYNC_CONCURRENCY", 4, &parseErrs),

		CourierSyncSpec:   os.Getenv("COURIER_SYNC_SPEC"),
		DebtorRefreshSpec: os.Getenv("DEBTOR_REFRESH_SPEC"),
		ReconcileSpec:     os.Getenv("RECONCILE_SPEC"),
		JobTimeout:        getEnvDuration("JOB_TIMEOUT", 2*time.Minute, &parseErrs),
		BatchItemTimeout:  getEnvDuration("BATCH_ITEM_TIMEOUT", 10*time.Second, &parseErrs),
	}

	if err := errors.Join(parseErrs...); err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var problems []error

	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		problems = append(problems, errors.New("missing required env for database: DB_HOST/DB_USER/DB_NAME"))
	}

	switch c.BusProvider {
	case BusKafka:
		if len(c.KafkaBrokers) == 0 || c.KafkaTopic == "" {
			problems = append(problems, errors.New("missing required env for kafka bus: KAFKA_BROKERS/KAFKA_TOPIC"))
		}
	case BusNATS:
		if c.NatsURL == "" {
			problems = append(problems, errors.New("missing required env for nats bus: NATS_URL"))
		}
	case BusLog:
	default:
		problems = append(problems, fmt.Errorf("invalid bus provider %q, must be 'kafka', 'nats' or 'log'", c.BusProvider))
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, spec := range map[string]string{
		"COURIER_SYNC_SPEC":   c.CourierSyncSpec,
		"DEBTOR_REFRESH_SPEC": c.DebtorRefreshSpec,
		"RECONCILE_SPEC":      c.ReconcileSpec,
	} {
		if spec == "" {
			continue
		}
		if _, err := parser.Parse(spec); err != nil {
			problems = append(problems, fmt.Errorf("invalid %s %q: %w", name, spec, err))
		}
	}

	if c.SyncConcurrency < 1 {
		problems = append(problems, fmt.Errorf("SYNC_CONCURRENCY must be positive, got %d", c.SyncConcurrency))
	}
	for name, d := range map[string]time.Duration{
		"CARRIER_TIMEOUT":    c.CarrierTimeout,
		"JOB_TIMEOUT":        c.JobTimeout,
		"BATCH_ITEM_TIMEOUT": c.BatchItemTimeout,
	} {
		if d <= 0 {
			problems = append(problems, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}

	return errors.Join(problems...)
}

func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSslMode)
}

func (c Config) HTTPAddr() string {
	return "0.0.0.0:" + c.HTTPPort
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int, problems *[]error) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		*problems = append(*problems, fmt.Errorf("%s: %w", key, err))
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool, problems *[]error) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		*problems = append(*problems, fmt.Errorf("%s: %w", key, err))
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration, problems *[]error) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		*problems = append(*problems, fmt.Errorf("%s: %w", key, err))
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/costcase/internal/casestudy"
	"github.com/dgallion1/costcase/internal/outstore"
)

type Config struct {
	// Output
	OutputKey string
	Store     outstore.Config

	// Case
	CaseFile   string
	PlanVolume int
	CashFloor  float64

	// Rendering
	Charts        bool
	Font          string
	RenderTimeout time.Duration

	LogLevel string
}

func Load() Config {
	cfg := Config{
		OutputKey: envOr("COSTCASE_OUTPUT_KEY", "report.docx"),
		Store: outstore.Config{
			Driver: outstore.Driver(envOr("COSTCASE_STORE_DRIVER", string(outstore.DriverFilesystem))),
			FSRoot: envOr("COSTCASE_STORE_FS_ROOT", "."),
			S3: outstore.S3Config{
				Bucket:          os.Getenv("COSTCASE_S3_BUCKET"),
				Region:          envOr("COSTCASE_S3_REGION", "us-east-1"),
				Endpoint:        os.Getenv("COSTCASE_S3_ENDPOINT"),
				PathStyle:       envBool("COSTCASE_S3_PATH_STYLE", false),
				AccessKeyID:     os.Getenv("COSTCASE_S3_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("COSTCASE_S3_SECRET_ACCESS_KEY"),
				Prefix:          os.Getenv("COSTCASE_S3_PREFIX"),
			},
		},

		CaseFile:   os.Getenv("COSTCASE_CASE_FILE"),
		PlanVolume: envInt("COSTCASE_PLAN_VOLUME", 45000),
		CashFloor:  envFloat("COSTCASE_CASH_FLOOR", 500_000),

		Charts:        envBool("COSTCASE_CHARTS", true),
		Font:          envOr("COSTCASE_FONT", "Times New Roman"),
		RenderTimeout: envDuration("COSTCASE_RENDER_TIMEOUT", 2*time.Minute),

		LogLevel: envOr("COSTCASE_LOG_LEVEL", "info"),
	}

	if cfg.PlanVolume <= 0 {
		cfg.PlanVolume = 45000
	}
	if cfg.CashFloor < 0 {
		cfg.CashFloor = 500_000
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = 2 * time.Minute
	}
	if strings.TrimSpace(cfg.Font) == "" {
		cfg.Font = "Times New Roman"
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case outstore.DriverFilesystem, outstore.DriverMemory:
	case outstore.DriverS3:
		if c.Store.S3.Bucket == "" {
			return fmt.Errorf("COSTCASE_S3_BUCKET is required for the s3 store")
		}
	default:
		return fmt.Errorf("unknown COSTCASE_STORE_DRIVER %q", c.Store.Driver)
	}
	if c.OutputKey == "" {
		return fmt.Errorf("COSTCASE_OUTPUT_KEY is required")
	}
	if !strings.EqualFold(path.Ext(c.OutputKey), ".docx") {
		return fmt.Errorf("COSTCASE_OUTPUT_KEY must end in .docx, got %q", c.OutputKey)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("COSTCASE_LOG_LEVEL: %w", err)
	}
	return l, nil
}

// Study returns the case inputs and parameters: defaults at the configured
// volume and cash floor, then the case file overrides when one is set.
func (c Config) Study() (casestudy.Inputs, casestudy.Params, error) {
	in := casestudy.DefaultInputs(c.PlanVolume)
	p := casestudy.DefaultParams()
	p.CashFloor = c.CashFloor
	if c.CaseFile == "" {
		return in, p, nil
	}
	cf, err := LoadCase(c.CaseFile)
	if err != nil {
		return in, p, err
	}
	if err := cf.Apply(&in, &p); err != nil {
		return in, p, fmt.Errorf("case file %s: %w", c.CaseFile, err)
	}
	return in, p, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

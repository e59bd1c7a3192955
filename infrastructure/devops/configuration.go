package devops

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ServerConfig is the backend configuration. It comes from a yaml SSM
// parameter in deployed environments; env vars fill the gaps locally.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	DSN             string `yaml:"dsn"`
	SigningSecret   string `yaml:"signing_secret"` // base64
	TokenTTLSeconds int64  `yaml:"token_ttl_seconds"`
	PublicBaseURL   string `yaml:"public_base_url"`
	UploadDir       string `yaml:"upload_dir"`
	S3Bucket        string `yaml:"s3_bucket"`
	S3Region        string `yaml:"s3_region"`
}

var (
	once    sync.Once
	loaded  *ServerConfig
	loadErr error
)

func fromEnv() *ServerConfig {
	ttl := int64(3600)
	if v := os.Getenv("SNAPCLOCK_TOKEN_TTL_SECONDS"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			ttl = parsed
		}
	}

	return &ServerConfig{
		Addr:            getenv("SNAPCLOCK_ADDR", ":3000"),
		DSN:             os.Getenv("DSN"),
		SigningSecret:   os.Getenv("SNAPCLOCK_SIGNING_SECRET"),
		TokenTTLSeconds: ttl,
		PublicBaseURL:   getenv("SNAPCLOCK_PUBLIC_BASE_URL", "http://localhost:3000"),
		UploadDir:       getenv("SNAPCLOCK_UPLOAD_DIR", "uploads"),
		S3Bucket:        os.Getenv("SNAPCLOCK_S3_BUCKET"),
		S3Region:        getenv("AWS_REGION", "ap-southeast-2"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadServerConfig resolves the configuration once per process. When
// SNAPCLOCK_CONFIG_PARAM is set, the named SSM parameter holds the yaml
// document; otherwise everything comes from env vars.
func LoadServerConfig(ctx context.Context) (*ServerConfig, error) {
	once.Do(func() {
		paramName := os.Getenv("SNAPCLOCK_CONFIG_PARAM")
		if paramName == "" {
			loaded = fromEnv()
			return
		}

		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		parsed := fromEnv()
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		loaded = parsed
	})

	return loaded, loadErr
}

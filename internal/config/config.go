package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"memo2vec/internal/app/errors"
)

// Config holds every option recognized by the transcribe and embed
// pipelines. Zero values are filled from Default.
type Config struct {
	// InputDir is the audio directory for transcribe and the transcript
	// directory for embed.
	InputDir string `yaml:"input_dir"`
	// Output is the transcript directory for transcribe and the table
	// location (path or s3://bucket/key) for embed.
	Output string `yaml:"output"`
	// APIKey overrides the key picked from the environment.
	APIKey string `yaml:"api_key"`

	ChunkSize        int     `yaml:"chunk_size" validate:"gt=0"`
	Stride           int     `yaml:"stride" validate:"gt=0"`
	MaxSizeMB        float64 `yaml:"max_size_mb" validate:"gt=0"`
	AudioExt         string  `yaml:"audio_ext" validate:"required,startswith=."`
	EmptyPlaceholder string  `yaml:"empty_placeholder" validate:"required"`
	DedupPolicy      string  `yaml:"dedup_policy" validate:"oneof=stop skip"`

	Embedding EmbeddingConfig `yaml:"embedding"`
	Whisper   WhisperConfig   `yaml:"whisper"`
	Minio     MinioConfig     `yaml:"minio"`

	MetricsFile string `yaml:"metrics_file"`
	Progress    bool   `yaml:"progress"`
	Verbose     bool   `yaml:"verbose"`

	Keys APIKeys `yaml:"-"`
}

// EmbeddingConfig selects the embedding service.
type EmbeddingConfig struct {
	Provider string `yaml:"provider" validate:"oneof=openai gemini ollama mock"`
	// Model defaults per provider when empty.
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url" validate:"omitempty,url"`
	Dimension int    `yaml:"dimension" validate:"gte=0"`
}

// WhisperConfig configures the speech-to-text service.
type WhisperConfig struct {
	Model   string `yaml:"model" validate:"required"`
	Prompt  string `yaml:"prompt"`
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
}

// MinioConfig configures the object store used for s3:// table locations.
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	return &Config{
		ChunkSize:        DefaultChunkSize,
		Stride:           DefaultStride,
		MaxSizeMB:        DefaultMaxSizeMB,
		AudioExt:         DefaultAudioExt,
		EmptyPlaceholder: DefaultEmptyPlaceholder,
		DedupPolicy:      DefaultDedupPolicy,
		Embedding: EmbeddingConfig{
			Provider:  DefaultProvider,
			Dimension: DefaultMockDimension,
		},
		Whisper: WhisperConfig{
			Model:  DefaultWhisperModel,
			Prompt: DefaultWhisperPrompt,
		},
		Minio: MinioConfig{
			Endpoint:  "localhost:9000",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
		},
	}
}

// Load reads the YAML file at path over the defaults and then applies the
// environment. An empty path skips the file.
func Load(path string, keys *APIKeys) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	if keys != nil {
		cfg.Keys = *keys
	}
	return cfg, nil
}

// ApplyEnv fills the object store settings from MINIO_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	c.Minio.Endpoint = getEnvOrDefault("MINIO_ENDPOINT", c.Minio.Endpoint, lookup)
	c.Minio.AccessKey = getEnvOrDefault("MINIO_ACCESS_KEY", c.Minio.AccessKey, lookup)
	c.Minio.SecretKey = getEnvOrDefault("MINIO_SECRET_KEY", c.Minio.SecretKey, lookup)
	if v, ok := lookup("MINIO_USE_SSL"); ok {
		c.Minio.UseSSL = v == "true"
	}
}

// MaxSizeBytes converts the audio size limit to bytes.
func (c *Config) MaxSizeBytes() int64 {
	return int64(c.MaxSizeMB * 1024 * 1024)
}

// EmbeddingAPIKey returns the credential for the configured embedding
// provider: the explicit key if set, otherwise the provider's environment key.
func (c *Config) EmbeddingAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch c.Embedding.Provider {
	case "gemini":
		return c.Keys.Gemini
	case "openai":
		return c.Keys.OpenAI
	}
	return ""
}

// TranscriptionAPIKey returns the credential for the speech-to-text service.
func (c *Config) TranscriptionAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return c.Keys.OpenAI
}

// RequireEmbeddingKey fails when the selected provider needs a key and none
// is configured.
func (c *Config) RequireEmbeddingKey() error {
	switch c.Embedding.Provider {
	case "openai", "gemini":
		if c.EmbeddingAPIKey() == "" {
			return errors.Wrapf(errors.ErrMissingAPIKey, "provider %s", c.Embedding.Provider)
		}
	}
	return nil
}

// RequireTranscriptionKey fails when no speech-to-text credential is set.
func (c *Config) RequireTranscriptionKey() error {
	if c.TranscriptionAPIKey() == "" {
		return errors.Wrap(errors.ErrMissingAPIKey, "transcription")
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
	})
	return v
}

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Mark(err, errors.ErrInvalidConfig)
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		messages = append(messages, describe(fe))
	}
	return fmt.Errorf("%w: %s", errors.ErrInvalidConfig, strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "startswith":
		return fmt.Sprintf("%s must start with %q", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a URL", field)
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}

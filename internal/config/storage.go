package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/docker/go-units"
)

const (
	// EnvStorageDriver overrides the storage backend driver.
	EnvStorageDriver = "STORAGE_DRIVER"

	// EnvStorageBasePath overrides the filesystem storage base path.
	EnvStorageBasePath = "STORAGE_BASE_PATH"

	// EnvStorageMaxUploadSize overrides the maximum upload size.
	EnvStorageMaxUploadSize = "STORAGE_MAX_UPLOAD_SIZE"

	// EnvStorageAllowedTypes overrides the upload MIME allow-list (comma-separated).
	EnvStorageAllowedTypes = "STORAGE_ALLOWED_TYPES"

	// EnvStorageUploadConcurrency overrides the bounded upload parallelism.
	EnvStorageUploadConcurrency = "STORAGE_UPLOAD_CONCURRENCY"

	EnvStorageS3Bucket         = "STORAGE_S3_BUCKET"
	EnvStorageS3Region         = "STORAGE_S3_REGION"
	EnvStorageS3Endpoint       = "STORAGE_S3_ENDPOINT"
	EnvStorageS3AccessKeyID    = "STORAGE_S3_ACCESS_KEY_ID"
	EnvStorageS3SecretKey      = "STORAGE_S3_SECRET_KEY"
	EnvStorageS3ForcePathStyle = "STORAGE_S3_FORCE_PATH_STYLE"
)

// Storage driver names.
const (
	DriverFilesystem = "filesystem"
	DriverS3         = "s3"
)

// S3Config contains S3 or S3-compatible object store settings.
type S3Config struct {
	Bucket         string `toml:"bucket"`
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	AccessKeyID    string `toml:"access_key_id"`
	SecretKey      string `toml:"secret_key"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// StorageConfig contains blob storage configuration.
type StorageConfig struct {
	// Driver selects the storage backend: "filesystem" or "s3".
	Driver string `toml:"driver"`

	// BasePath is the root directory for filesystem storage.
	// Default: ".data/blobs"
	BasePath string `toml:"base_path"`

	MaxUploadSize     string   `toml:"max_upload_size"`
	AllowedTypes      []string `toml:"allowed_types"`
	UploadConcurrency int      `toml:"upload_concurrency"`
	S3                S3Config `toml:"s3"`

	maxUploadSizeVal int64
}

// MaxUploadSizeBytes returns the parsed maximum upload size.
func (c *StorageConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// TypeAllowed reports whether the MIME type is in the upload allow-list.
func (c *StorageConfig) TypeAllowed(mimeType string) bool {
	for _, allowed := range c.AllowedTypes {
		if strings.EqualFold(allowed, mimeType) {
			return true
		}
	}
	return false
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *StorageConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *StorageConfig) Merge(overlay *StorageConfig) {
	if overlay.Driver != "" {
		c.Driver = overlay.Driver
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if size, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}
	if overlay.AllowedTypes != nil {
		c.AllowedTypes = overlay.AllowedTypes
	}
	if overlay.UploadConcurrency != 0 {
		c.UploadConcurrency = overlay.UploadConcurrency
	}
	if overlay.S3.Bucket != "" {
		c.S3.Bucket = overlay.S3.Bucket
	}
	if overlay.S3.Region != "" {
		c.S3.Region = overlay.S3.Region
	}
	if overlay.S3.Endpoint != "" {
		c.S3.Endpoint = overlay.S3.Endpoint
	}
	if overlay.S3.AccessKeyID != "" {
		c.S3.AccessKeyID = overlay.S3.AccessKeyID
	}
	if overlay.S3.SecretKey != "" {
		c.S3.SecretKey = overlay.S3.SecretKey
	}
	if overlay.S3.ForcePathStyle {
		c.S3.ForcePathStyle = true
	}
}

func (c *StorageConfig) loadDefaults() {
	if c.Driver == "" {
		c.Driver = DriverFilesystem
	}
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
	if len(c.AllowedTypes) == 0 {
		c.AllowedTypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}
	}
	if c.UploadConcurrency == 0 {
		c.UploadConcurrency = 4
	}
}

func (c *StorageConfig) loadEnv() {
	if v := os.Getenv(EnvStorageDriver); v != "" {
		c.Driver = v
	}
	if v := os.Getenv(EnvStorageBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvStorageMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv(EnvStorageAllowedTypes); v != "" {
		types := strings.Split(v, ",")
		c.AllowedTypes = make([]string, 0, len(types))
		for _, t := range types {
			if trimmed := strings.TrimSpace(t); trimmed != "" {
				c.AllowedTypes = append(c.AllowedTypes, trimmed)
			}
		}
	}
	if v := os.Getenv(EnvStorageUploadConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.UploadConcurrency = n
		}
	}
	if v := os.Getenv(EnvStorageS3Bucket); v != "" {
		c.S3.Bucket = v
	}
	if v := os.Getenv(EnvStorageS3Region); v != "" {
		c.S3.Region = v
	}
	if v := os.Getenv(EnvStorageS3Endpoint); v != "" {
		c.S3.Endpoint = v
	}
	if v := os.Getenv(EnvStorageS3AccessKeyID); v != "" {
		c.S3.AccessKeyID = v
	}
	if v := os.Getenv(EnvStorageS3SecretKey); v != "" {
		c.S3.SecretKey = v
	}
	if v := os.Getenv(EnvStorageS3ForcePathStyle); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.S3.ForcePathStyle = b
		}
	}
}

func (c *StorageConfig) validate() error {
	switch c.Driver {
	case DriverFilesystem:
		if c.BasePath == "" {
			return fmt.Errorf("base_path required")
		}
	case DriverS3:
		if c.S3.Bucket == "" || c.S3.Region == "" {
			return fmt.Errorf("s3 bucket and region required")
		}
	default:
		return fmt.Errorf("invalid driver: %s (must be filesystem or s3)", c.Driver)
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	if c.UploadConcurrency < 1 {
		return fmt.Errorf("upload_concurrency must be positive")
	}

	return nil
}

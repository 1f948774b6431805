package storage

// Config holds configuration for the object storage client.
type Config struct {
	// Endpoint is the storage server address (host:port).
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL enables TLS for the connection.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the default bucket where schedule imports live.
	Bucket string `mapstructure:"bucket" default:"clinic"`
	// Region is the storage region (optional).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the timeout for connection setup and responses.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

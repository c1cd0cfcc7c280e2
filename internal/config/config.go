package config

// Header constants.
const (
	HEADER_KEY_X_USER_ID = "X-User-Id"
)

// Environment variable keys.
const (
	ENV_KEY_APP_ENV        = "APP_ENV"
	ENV_KEY_PORT           = "PORT"
	ENV_KEY_STORAGE_DRIVER = "STORAGE_DRIVER"
	ENV_KEY_STORAGE_DIR    = "STORAGE_DIR"

	ENV_KEY_MINIO_ENDPOINT   = "MINIO_ENDPOINT"
	ENV_KEY_MINIO_ACCESS_KEY = "MINIO_ACCESS_KEY"
	ENV_KEY_MINIO_SECRET_KEY = "MINIO_SECRET_KEY"
	ENV_KEY_MINIO_BUCKET     = "MINIO_BUCKET"

	ENV_KEY_S3_BUCKET = "S3_BUCKET"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	STORAGE_DRIVER_LOCAL = "local"
	STORAGE_DRIVER_MINIO = "minio"
	STORAGE_DRIVER_S3    = "s3"
)

type ContextKey uint

const (
	_ ContextKey = iota
	CTX_KEY_USER_ID
)

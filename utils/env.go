package utils

import "os"

var (
	AWS_ACCESS_KEY_ID     = os.Getenv("AWS_ACCESS_KEY_ID")
	AWS_SECRET_ACCESS_KEY = os.Getenv("AWS_SECRET_ACCESS_KEY")
	AWS_DEFAULT_REGION    = GetEnvOrDefault("AWS_DEFAULT_REGION", "us-east-1")

	S3_BUCKET_NAME = os.Getenv("S3_BUCKET_NAME")
	S3_ENDPOINT    = os.Getenv("S3_ENDPOINT")
	S3_PREFIX      = os.Getenv("S3_PREFIX")

	// STORE selects where persisted partitions live, either "disk" or "s3"
	STORE    = GetEnvOrDefault("STORE", "disk")
	DATA_DIR = GetEnvOrDefault("DATA_DIR", ".")

	// RUN_TIMEOUT_SEC bounds a single CLI command, 0 means no limit
	RUN_TIMEOUT_SEC = GetEnvOrDefaultInt("RUN_TIMEOUT_SEC", 0)
)

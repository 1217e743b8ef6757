package config

import (
	"log"
	"os"
	"strconv"
)

func New() Config {
	return Config{
		BasePath: os.Getenv("BASE_PATH"),
		Postgresql: Postgresql{
			Host:         requireEnv("DATABASE_HOST"),
			Port:         requireEnvAsInt("DATABASE_PORT"),
			Username:     requireEnv("DATABASE_USERNAME"),
			Password:     requireEnv("DATABASE_PASSWORD"),
			DatabaseName: requireEnv("DATABASE_NAME"),
		},
		S3: S3{
			Region: requireEnv("S3_REGION"),
			Bucket: requireEnv("S3_BUCKET"),
		},
		Session: Session{
			SecretKey:         requireEnv("SESSION_TOKEN_SECRET_KEY"),
			ExpirationSeconds: requireEnvAsInt("SESSION_TOKEN_EXPIRATION_SECONDS"),
		},
	}
}

type Config struct {
	BasePath   string
	Postgresql Postgresql
	S3         S3
	Session    Session
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

type S3 struct {
	Region string
	Bucket string
}

type Session struct {
	SecretKey         string
	ExpirationSeconds int
}

func requireEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("Can't find environment variable: %s\n", key)
	}
	return value
}

func requireEnvAsInt(key string) int {
	valueStr := requireEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value as integer: %s", err.Error())
	}
	return value
}

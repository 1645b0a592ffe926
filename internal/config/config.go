package config

import "os"

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port        string
	MongoURI    string
	MongoDB     string
	TokenSecret string
	UploadDir   string
}

func Load() *Config {
	return &Config{
		Port:        getenv("PORT", "5000"),
		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getenv("MONGO_DB", "peerFund"),
		TokenSecret: getenv("ACCESS_TOKEN_SECRET", ""),
		UploadDir:   getenv("UPLOAD_DIR", "uploads/profile-images"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

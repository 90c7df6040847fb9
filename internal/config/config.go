package config

import (
	"log"
	"os"
	"strconv"

	"claimbot/internal/models"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	ConsulAddress    string
	ServiceName      string
	ServiceID        string
	ServiceAddress   string
	RabbitMQUser     string
	RabbitMQPassword string
	RabbitMQPort     string
	JWTSecret        string
	JWTExpiredHours  int64
	OfficeAddress    string
	OfficeLat        float64
	OfficeLng        float64
	DistanceAPIURL   string
	DistanceAPIKey   string
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	ServiceConfig = New()
}

var ServiceConfig *Config

func New() *Config {
	jwtExpiredStr := getEnv("TOKEN_EXPIRY_TIME", "24")
	jwtExpired, _ := strconv.Atoi(jwtExpiredStr)

	officeLat, _ := strconv.ParseFloat(getEnv("OFFICE_LAT", "0"), 64)
	officeLng, _ := strconv.ParseFloat(getEnv("OFFICE_LNG", "0"), 64)

	return &Config{
		Port:             getEnv("PORT", "9200"),
		RabbitMQUser:     getEnv("RABBITMQ_USER", ""),
		RabbitMQPassword: getEnv("RABBITMQ_PASSWORD", ""),
		RabbitMQPort:     getEnv("RABBITMQ_PORT", ""),
		ConsulAddress:    "consul-server:" + getEnv("CONSUL_PORT", "8500"),
		ServiceName:      getEnv("CLAIMBOT_SERVICE_NAME", "claimbot-service"),
		ServiceID:        getEnv("CLAIMBOT_SERVICE_NAME", "claimbot-service") + "-" + getEnv("CLAIMBOT_HOSTNAME", "1"),
		ServiceAddress:   getEnv("CLAIMBOT_SERVICE_ADDRESS", "claimbot-service"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTExpiredHours:  int64(jwtExpired),
		OfficeAddress:    getEnv("OFFICE_ADDRESS", ""),
		OfficeLat:        officeLat,
		OfficeLng:        officeLng,
		DistanceAPIURL:   getEnv("DISTANCE_API_URL", ""),
		DistanceAPIKey:   getEnv("DISTANCE_API_KEY", ""),
	}
}

// RabbitMQURI assembles the broker URI, or empty when the broker is not
// configured so event publishing degrades to disabled.
func (c *Config) RabbitMQURI() string {
	if c.RabbitMQUser == "" || c.RabbitMQPort == "" {
		return ""
	}
	return "amqp://" + c.RabbitMQUser + ":" + c.RabbitMQPassword + "@rabbitmq:" + c.RabbitMQPort + "/"
}

// OfficeLocation returns the configured office, or nil when it has never
// been set — office-based mileage modes then fail with a configuration
// error instead of measuring from (0,0).
func (c *Config) OfficeLocation() *models.Location {
	if c.OfficeAddress == "" && c.OfficeLat == 0 && c.OfficeLng == 0 {
		return nil
	}
	return &models.Location{Address: c.OfficeAddress, Lat: c.OfficeLat, Lng: c.OfficeLng}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Error Retriving ENV: %s not exist", key)
	return fallback
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
)

// Settings cấu hình đọc từ .env và biến môi trường
type Settings struct {
	Port            string
	Env             string
	Timezone        string
	LogLevel        string
	LogDir          string
	HotelAPIURL     string
	HotelAPITimeout time.Duration
	RedisAddr       string
	RedisUser       string
	RedisPassword   string
	CloudinaryURL   string
	RabbitMQURL     string
	CORSOrigins     []string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func getEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// LoadSettings đọc cấu hình, thiếu thì lấy mặc định
func LoadSettings() Settings {
	s := Settings{
		Port:            getEnvDefault("PORT", "8083"),
		Env:             strings.ToLower(os.Getenv("ENV")),
		Timezone:        getEnvDefault("APP_TIMEZONE", "Asia/Ho_Chi_Minh"),
		LogLevel:        getEnvDefault("LOG_LEVEL", "info"),
		LogDir:          os.Getenv("LOG_DIR"),
		HotelAPIURL:     getEnvDefault("HOTEL_API_URL", "http://localhost:5000/api"),
		HotelAPITimeout: 10 * time.Second,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisUser:       os.Getenv("REDIS_USER"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		CloudinaryURL:   os.Getenv("CLOUDINARY_URL"),
		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
	}
	if raw := os.Getenv("HOTEL_API_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			s.HotelAPITimeout = d
		} else if secs, err := strconv.Atoi(raw); err == nil {
			s.HotelAPITimeout = time.Duration(secs) * time.Second
		} else {
			log.Printf("Warning: HOTEL_API_TIMEOUT không hợp lệ %q, dùng %s", raw, s.HotelAPITimeout)
		}
	}
	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			s.CORSOrigins = append(s.CORSOrigins, o)
		}
	}
	return s
}

// Location múi giờ khách sạn, sai tên thì dùng UTC
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		log.Printf("Warning: APP_TIMEZONE %q không hợp lệ, dùng UTC: %v", s.Timezone, err)
		return time.UTC
	}
	return loc
}

// ConnectCloudinary tạo client từ CLOUDINARY_URL, không cấu hình thì trả nil
func ConnectCloudinary(rawURL string) *cloudinary.Cloudinary {
	if rawURL == "" {
		log.Println("Warning: chưa cấu hình CLOUDINARY_URL, tắt upload ảnh")
		return nil
	}
	cld, err := cloudinary.NewFromURL(rawURL)
	if err != nil {
		log.Printf("Lỗi khi khởi tạo Cloudinary: %v", err)
		return nil
	}
	return cld
}

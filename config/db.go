package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"indigo-hotel/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// SeedDatabase fills an empty database with a default receptionist account and
// the bookable inventory (rooms, restaurant tables, event salons).
func SeedDatabase() {
	// ---------------- Staff user ----------------
	var staffCount int64
	DB.Model(&models.User{}).Where("role <> ?", models.RoleClient).Count(&staffCount)
	if staffCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("recepcion123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default staff password: %v", err)
		} else {
			staff := models.User{
				FirstName: "Front Desk",
				Username:  "recepcion@hotelindigo.local",
				Email:     "recepcion@hotelindigo.local",
				Password:  string(hash),
				Role:      models.RoleAdmin,
			}
			if err := DB.Create(&staff).Error; err != nil {
				log.Printf("warning: failed to create default staff user: %v", err)
			} else {
				log.Println("Default staff user seeded")
			}
		}
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomNumber: "101", Category: "standard", BedSize: "queen", Floor: "1", PriceBase: 120, Capacity: 2, Description: "Standard double room"},
			{RoomNumber: "102", Category: "standard", BedSize: "twin", Floor: "1", PriceBase: 120, Capacity: 2, Description: "Standard twin room"},
			{RoomNumber: "201", Category: "deluxe", BedSize: "king", Floor: "2", PriceBase: 180, Capacity: 3, Description: "Deluxe room with balcony"},
			{RoomNumber: "301", Category: "suite", BedSize: "king", Floor: "3", PriceBase: 260, Capacity: 4, Description: "Suite with sea view"},
		}
		DB.Create(&rooms)
		log.Println("Rooms seeded")
	}

	// ---------------- Restaurant tables ----------------
	var tableCount int64
	DB.Model(&models.RestaurantTable{}).Count(&tableCount)
	if tableCount == 0 {
		tables := []models.RestaurantTable{
			{TableNumber: "M1", Capacity: 2, Location: "salon"},
			{TableNumber: "M2", Capacity: 4, Location: "salon"},
			{TableNumber: "T1", Capacity: 4, Location: "terrace"},
			{TableNumber: "T2", Capacity: 6, Location: "terrace"},
		}
		DB.Create(&tables)
		log.Println("Restaurant tables seeded")
	}

	// ---------------- Event salons ----------------
	var salonCount int64
	DB.Model(&models.EventSalon{}).Count(&salonCount)
	if salonCount == 0 {
		salons := []models.EventSalon{
			{Name: "Salon Andino", Capacity: 80, PriceBase: 900, Description: "Mid-size salon for corporate events"},
			{Name: "Salon Imperial", Capacity: 200, PriceBase: 2200, Description: "Main ballroom"},
		}
		DB.Create(&salons)
		log.Println("Event salons seeded")
	}
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "indigo_hotel")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RestaurantTable{},
		&models.EventSalon{},
		&models.RoomReservation{},
		&models.TableReservation{},
		&models.SalonReservation{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

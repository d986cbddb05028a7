package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"indigo-hotel/controllers"
	"indigo-hotel/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controller instances into the route tree.
func SetupRouter(
	ac *controllers.AuthController,
	rc *controllers.ReservationController,
	tc *controllers.TableReservationController,
	sc *controllers.SalonReservationController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
		}

		// Public catalog / resource snapshots
		rooms := api.Group("/rooms")
		{
			rooms.GET("", controllers.GetRooms)
			rooms.GET("/:id", controllers.GetRoomByID)
		}
		tables := api.Group("/tables")
		{
			tables.GET("", controllers.GetTables)
			tables.GET("/:id", controllers.GetTableByID)
		}
		salons := api.Group("/salons")
		{
			salons.GET("", controllers.GetSalons)
			salons.GET("/:id", controllers.GetSalonByID)
		}

		// Reservations (authenticated)
		reservations := api.Group("/reservations", middleware.RequireAuth(jwtSecret))
		{
			roomRes := reservations.Group("/rooms")
			{
				roomRes.GET("", rc.ListRoomReservations)
				roomRes.POST("", rc.CreateRoomReservation)
				roomRes.POST("/:id/verify", rc.VerifyOTP)
				roomRes.POST("/:id/resend", rc.ResendOTP)
				roomRes.PATCH("/:id", middleware.RequireStaff(), rc.PatchRoomReservation)
				roomRes.DELETE("/:id", middleware.RequireStaff(), rc.DeleteRoomReservation)
			}

			tableRes := reservations.Group("/tables")
			{
				tableRes.GET("", tc.List)
				tableRes.POST("", tc.Create)
				tableRes.PATCH("/:id", middleware.RequireStaff(), tc.Patch)
				tableRes.DELETE("/:id", middleware.RequireStaff(), tc.Delete)
			}

			salonRes := reservations.Group("/salons")
			{
				salonRes.GET("", sc.List)
				salonRes.POST("", sc.Create)
				salonRes.PATCH("/:id", middleware.RequireStaff(), sc.Patch)
				salonRes.DELETE("/:id", middleware.RequireStaff(), sc.Delete)
			}
		}
	}

	return r
}

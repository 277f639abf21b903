package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tripticket/internal/config"
	"tripticket/internal/events"
	h "tripticket/internal/http/handlers"
	"tripticket/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, hub *events.Hub) *gin.Engine {
	h.Env = env
	h.EventHub = hub

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.RequireAuth([]byte(env.JWTSecret))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/events", h.StreamEvents)

		// Auth
		api.POST("/auth/login", h.Login)
		api.POST("/auth/register", h.Register)

		// Trip tickets
		tickets := api.Group("/tickets")
		tickets.POST("", h.SubmitTicket)
		tickets.GET("", h.ListTickets)
		tickets.GET("/:id", h.GetTicket)
		tickets.GET("/:id/pdf", h.GetTicketPDF)
		tickets.PUT("/:id/decision", auth, h.DecideTicket)
		tickets.DELETE("/:id", auth, h.DeleteTicket)

		// Gate taps (the RFID reader authenticates with a device token at
		// the proxy, not with user JWTs)
		taps := api.Group("/taps")
		taps.POST("/urgent", h.TapUrgent)
		taps.POST("/request-form", h.TapRequestForm)
		taps.POST("/departure", h.TapDeparture)
		taps.POST("/arrival", h.TapArrival)

		api.GET("/urgent-trips", h.ListUrgentTrips)

		// Registries
		api.GET("/offices", h.ListOffices)
		api.POST("/offices", auth, h.CreateOffice)
		api.GET("/drivers", h.ListDrivers)
		api.POST("/drivers", auth, h.CreateDriver)
		api.GET("/vehicles", h.ListVehicles)
		api.POST("/vehicles", auth, h.CreateVehicle)
	}

	return r
}

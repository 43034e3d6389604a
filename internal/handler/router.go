package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"spotstay/internal/handler/api"
	"spotstay/internal/handler/middleware"
	"spotstay/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	spotHandler *api.SpotHandler,
	authMiddleware *middleware.AuthMiddleware,
	redisClient *redis.Client,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, authHandler, bookingHandler, spotHandler, authMiddleware, redisClient)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	spotHandler *api.SpotHandler,
	authMiddleware *middleware.AuthMiddleware,
	redisClient *redis.Client,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Write endpoints share a token-bucket budget so a single client
	// cannot hammer the serializable transaction path.
	writeLimit := middleware.NewTokenBucket(cfg.RateLimit, redisClient)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login, Mw: []gin.HandlerFunc{writeLimit}},
				{Method: http.MethodPost, Path: "/signup", Handler: authHandler.Signup, Mw: []gin.HandlerFunc{writeLimit}},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		spots := apiGroup.Group("/spots")
		{
			addRoutes(spots, []route{
				{Method: http.MethodGet, Path: "", Handler: spotHandler.ListSpots},
				{Method: http.MethodGet, Path: "/:id", Handler: spotHandler.GetSpot},
			})

			owned := spots.Group("")
			owned.Use(authMiddleware.RequireAuth())
			addRoutes(owned, []route{
				{Method: http.MethodGet, Path: "/mine", Handler: spotHandler.ListMySpots},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: spotHandler.ListSpotBookings},
				{Method: http.MethodGet, Path: "/:id/stats", Handler: spotHandler.SpotStats},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking, Mw: []gin.HandlerFunc{writeLimit}},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListMyBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.CancelBooking, Mw: []gin.HandlerFunc{writeLimit}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

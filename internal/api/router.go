package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	bookingHttp "github.com/shareit-go/shareit-server/internal/booking/http"
	"github.com/shareit-go/shareit-server/internal/identity"
	itemHttp "github.com/shareit-go/shareit-server/internal/item/http"
	requestHttp "github.com/shareit-go/shareit-server/internal/itemrequest/http"
	userHttp "github.com/shareit-go/shareit-server/internal/user/http"
)

// Config holds the handlers and settings the router needs.
type Config struct {
	ProdOrigins string
	Logger      zerolog.Logger

	UserHandler    *userHttp.Handler
	ItemHandler    *itemHttp.Handler
	RequestHandler *requestHttp.Handler
	BookingHandler *bookingHttp.Handler
}

// NewRouter assembles the middleware stack and registers all module routes.
// Paths are mounted at the root; clients address /users, /items, /requests
// and /bookings directly.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", identity.Header}
	r.Use(cors.New(corsConfig))

	identityMiddleware := identity.Required()

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, cfg.UserHandler)
		itemHttp.RegisterRoutes(root, cfg.ItemHandler, identityMiddleware)
		requestHttp.RegisterRoutes(root, cfg.RequestHandler, identityMiddleware)
		bookingHttp.RegisterRoutes(root, cfg.BookingHandler, identityMiddleware)
	}

	return r
}

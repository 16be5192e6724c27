package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/shareit-go/shareit-server/internal/api"
	"github.com/shareit-go/shareit-server/internal/booking"
	bookingHttp "github.com/shareit-go/shareit-server/internal/booking/http"
	"github.com/shareit-go/shareit-server/internal/item"
	itemHttp "github.com/shareit-go/shareit-server/internal/item/http"
	"github.com/shareit-go/shareit-server/internal/itemrequest"
	requestHttp "github.com/shareit-go/shareit-server/internal/itemrequest/http"
	"github.com/shareit-go/shareit-server/internal/user"
	userHttp "github.com/shareit-go/shareit-server/internal/user/http"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	DBPool      *pgxpool.Pool
	Logger      zerolog.Logger
	ProdOrigins string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, cfg.Logger)

	// Item Request Module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userService, cfg.Logger)

	// Booking repository first: the item module reads booking snapshots
	// through it (item.BookingLookup).
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item Module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, userService, requestService, bookingRepo, cfg.Logger)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, itemService, userService, cfg.Logger)

	router := api.NewRouter(api.Config{
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		UserHandler:    userHttp.NewHandler(userService),
		ItemHandler:    itemHttp.NewHandler(itemService),
		RequestHandler: requestHttp.NewHandler(requestService),
		BookingHandler: bookingHttp.NewHandler(bookingService),
	})

	return &Container{Router: router}
}

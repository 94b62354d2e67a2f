package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth/credentials"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth/handler"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth/token"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/cache"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/config"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/db"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/middleware"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/payment"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/property"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/reservations"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/schemacheck"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/session"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/upstream/booking"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/upstream/payments"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/validation"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func(context.Context) error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	router, err := newRouter(cfg, infra)
	if err != nil {
		_ = infra.Close(context.Background())
		return nil, nil, err
	}

	return router, infra.Close, nil
}

// newRouter builds every service and handler on top of infra.
func newRouter(cfg config.Config, infra *Infra) (*gin.Engine, error) {
	normalize, err := payment.NormalizerFor(cfg.PriceScale)
	if err != nil {
		return nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	validator := validation.New()
	responseCache := cache.NewRedisCache(infra.Redis.Client)
	sessionStore := session.NewRedisStore(infra.Redis.Client)
	tokens := token.NewIssuer(cfg.SecretKey, cfg.TokenTTL)
	authMiddleware := middleware.NewAuthMiddleware(sessionStore, tokens)

	users := db.NewUserRepository(infra.DB.Database)
	credentialService := credentials.NewService(users, validator)

	hotels := booking.NewClient(cfg.RapidAPIKey, cfg.RapidAPIHost, cfg.RapidAPIBaseURL, cfg.UpstreamTimeout)
	checkout := payments.NewCheckoutClient(cfg.StripeKey, cfg.CheckoutCurrency, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)

	authHandler := handler.NewHandler(
		credentialService,
		tokens,
		sessionStore,
		authMiddleware,
		session.DefaultCookieOptions(cfg.Production()),
	)
	propertyHandler := property.NewHandler(property.NewService(hotels, responseCache, cfg.PropertyTTL))
	paymentHandler := payment.NewHandler(payment.NewService(checkout, responseCache, cfg.CheckoutTTL, normalize))
	testingHandler := schemacheck.NewHandler(validator)
	reservationHandler := reservations.NewHandler(
		db.NewPropertyRepository(infra.DB.Database),
		db.NewBookingRepository(infra.DB.Database),
		authMiddleware,
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group(cfg.APIPrefix)

	propertyHandler.RegisterRoutes(api)
	paymentHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)
	testingHandler.RegisterRoutes(api)
	reservationHandler.RegisterRoutes(api)

	return router, nil
}

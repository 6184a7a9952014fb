package routes

import (
	"strconv"
	"time"

	_ "placetopay_checkout/docs"
	"placetopay_checkout/internal/adapter/http/handlers"
	"placetopay_checkout/internal/adapter/persistence/repository"
	"placetopay_checkout/internal/infrastructure/config"
	"placetopay_checkout/internal/infrastructure/database"
	"placetopay_checkout/internal/infrastructure/events"
	"placetopay_checkout/internal/infrastructure/lock"
	"placetopay_checkout/internal/infrastructure/logging"
	"placetopay_checkout/internal/infrastructure/metrics"
	"placetopay_checkout/internal/infrastructure/payments"
	"placetopay_checkout/internal/usecase"
	"placetopay_checkout/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const PORT = 8080

// Run will start the server
func Run() {
	logger := logging.NewLogger()
	router := gin.New()
	setMiddlewares(router, logger)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	getRoutes(router, logger)

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		logger.WithError(err).Fatal("Failed to startup the application")
	}
}

func getRoutes(router *gin.Engine, logger *logrus.Logger) {
	cfg := config.LoadGatewayConfig()

	ddb := database.ConnectDynamoDB(logger)
	tables := database.TablesFromEnv()
	orderRepo := repository.NewOrderDynamoRepository(ddb, tables.Orders)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb, tables.Payments)

	gateway, mock := newPaymentGateway(cfg, logger)
	if gateway != nil {
		gateway = metrics.NewInstrumentedGateway(gateway, cfg.Provider, metrics.NewGatewayMetrics(prometheus.DefaultRegisterer))
	}

	builder := usecase.NewPaymentRequestBuilder(usecase.RequestOptions{
		ExpirationMinutes:    cfg.ExpirationMinutes,
		AllowPartialPayment:  cfg.AllowPartialPayment,
		SkipResult:           cfg.SkipResult,
		FillBuyerInformation: cfg.FillBuyerInformation,
		FillTaxInformation:   cfg.FillTaxInformation,
		TaxCategoryMap:       cfg.TaxCategoryMap(),
		Locale:               cfg.Locale,
		ReturnURLBase:        cfg.ReturnURLBase,
	}, usecase.NewTaxAggregator())

	orchestrator := usecase.NewGatewayOrchestrator(
		orderRepo,
		paymentRepo,
		gateway,
		builder,
		logger,
		cfg.Mode,
		usecase.WithEventPublisher(newEventPublisher(logger)),
		usecase.WithLocker(newLocker(logger)),
	)

	checkoutHandler := handlers.NewCheckoutHandler(orchestrator, logger)
	paymentHandler := handlers.NewPaymentHandler(orchestrator, logger)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addCheckoutRoutes(v1, checkoutHandler, paymentHandler)
	if mock != nil {
		addMockGatewayRoutes(router, mock)
	}
}

// newPaymentGateway picks the provider from config. The mock is returned a
// second time so its checkout page can be routed.
func newPaymentGateway(cfg config.GatewayConfig, logger *logrus.Logger) (interfaces.IPaymentGateway, *payments.MockGateway) {
	log := logging.Component(logger, "routes")

	if config.IsPaymentGatewayMockEnabled() {
		mock := payments.NewMockGateway(cfg.ReturnURLBase, logger)
		return mock, mock
	}

	switch cfg.Provider {
	case config.ProviderMercadoPago:
		mp, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.MercadoPagoSandbox, logger)
		if err != nil {
			log.WithError(err).Warn("Mercado Pago gateway not configured")
			return nil, nil
		}
		return mp, nil
	default:
		ptp, err := payments.NewPlacetoPayGateway(cfg, logger)
		if err != nil {
			log.WithError(err).Warn("PlacetoPay gateway not configured")
			return nil, nil
		}
		return ptp, nil
	}
}

func newEventPublisher(logger *logrus.Logger) interfaces.IPaymentEventPublisher {
	if nc := events.ConnectNATS(logger); nc != nil {
		return events.NewNATSPublisher(nc, events.DefaultSubjectPrefix, logger)
	}
	return events.NewLogPublisher(logger)
}

func newLocker(logger *logrus.Logger) interfaces.ILocker {
	if client := database.ConnectRedis(logger); client != nil {
		return lock.NewRedisLocker(client, lock.DefaultTTL, logger)
	}
	return lock.NoopLocker{}
}

func setMiddlewares(router *gin.Engine, logger *logrus.Logger) {
	router.Use(requestLogger(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithField("panic", recovered).Error("Recovered from panic")
		c.AbortWithStatus(500)
	}))
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	log := logging.Component(logger, "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}).Info("[http] request")
	}
}

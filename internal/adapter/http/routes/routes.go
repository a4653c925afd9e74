package routes

import (
	"context"
	"fmt"
	"log"
	"lease_ledger/internal/adapter/http/handlers"
	"lease_ledger/internal/adapter/persistence/memory"
	"lease_ledger/internal/adapter/persistence/repository"
	"lease_ledger/internal/config"
	"lease_ledger/internal/infrastructure/database"
	"lease_ledger/internal/infrastructure/webhook"
	"lease_ledger/internal/usecase"
	"lease_ledger/internal/usecase/interfaces"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Repositories is the persistence gateway the engine runs on.
type Repositories struct {
	Plans           interfaces.IPaymentPlanRepository
	Installments    interfaces.IInstallmentRepository
	ServicePayments interfaces.IServicePaymentRepository
	Receipts        interfaces.IReceiptRepository
}

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, err := NewRepositories(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}

	router := NewRouter(cfg, repos)
	log.Printf("[routes] starting env=%s driver=%s port=%d", cfg.Environment, cfg.Storage.Driver, cfg.Port)
	if err := router.Run(":" + strconv.Itoa(cfg.Port)); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

// NewRepositories selects the persistence driver named in the configuration.
func NewRepositories(ctx context.Context, cfg config.Config) (Repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Printf("[routes] WARN memory persistence selected; state is lost on restart")
		store := memory.NewStore()
		return Repositories{
			Plans:           store.Plans,
			Installments:    store.Installments,
			ServicePayments: store.ServicePayments,
			Receipts:        store.Receipts,
		}, nil
	case config.DriverDynamoDB:
		ddb, err := database.NewDynamoDBClient(ctx, database.SettingsFromEnv())
		if err != nil {
			return Repositories{}, err
		}
		st := cfg.Storage
		return Repositories{
			Plans:           repository.NewPaymentPlanDynamoRepository(ddb, st.PaymentPlansTable),
			Installments:    repository.NewInstallmentDynamoRepository(ddb, st.InstallmentsTable),
			ServicePayments: repository.NewServicePaymentDynamoRepository(ddb, st.ServicePaymentTable),
			Receipts:        repository.NewReceiptDynamoRepository(ddb, st.ReceiptsTable),
		}, nil
	default:
		return Repositories{}, fmt.Errorf("unknown persistence driver %q", cfg.Storage.Driver)
	}
}

// NewRouter wires the use cases and handlers over repos.
func NewRouter(cfg config.Config, repos Repositories) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	recorder := usecase.NewReceiptRecorder(repos.Receipts, cfg.Currency)
	installments := usecase.NewInstallmentReconcilerUseCase(repos.Installments, repos.Plans, recorder, cfg.Reconcile.MaxAttempts)
	services := usecase.NewServicePaymentReconcilerUseCase(repos.ServicePayments, recorder, cfg.Reconcile.MaxAttempts)
	reconciliation := usecase.NewReconciliationUseCase(installments, services)
	query := usecase.NewPaymentQueryUseCase(repos.Plans, repos.Installments, repos.ServicePayments, repos.Receipts)

	verifier := webhook.NewSignatureVerifier(cfg.Webhook)

	webhookHandler := handlers.NewPaymentWebhookHandler(verifier, reconciliation, cfg.StorageTimeout())
	queryHandler := handlers.NewPaymentQueryHandler(query, cfg.Currency)

	// Public routes
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addWebhookRoutes(v1, webhookHandler)
	addPaymentRoutes(v1, queryHandler)
	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"sellit/internal/adapter/api"
	"sellit/internal/adapter/api/handler"
	apimiddleware "sellit/internal/adapter/api/middleware"
	"sellit/internal/adapter/api/router"
	"sellit/internal/adapter/gateway"
	"sellit/internal/domain/service"
	"sellit/internal/infrastructure/firebase"
	"sellit/internal/infrastructure/genai"
	"sellit/internal/infrastructure/ratelimit"
	"sellit/internal/infrastructure/websocket"
	"sellit/internal/store"
	"sellit/internal/usecase"
	"sellit/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var authClient *firebase.AuthClient
	var gw store.Gateway

	if cfg.FirebaseProject != "" {
		var opt option.ClientOption
		if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
			opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
		} else {
			serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
			if serviceAccountPath == "" {
				log.Fatalf("FIREBASE_SERVICE_ACCOUNT_JSON or FIREBASE_SERVICE_ACCOUNT_PATH is required")
			}
			if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
				log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
			}
			opt = option.WithCredentialsFile(serviceAccountPath)
		}

		firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}

		fbAuth, err := firebaseApp.Auth(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}
		authClient = firebase.NewAuthClient(fbAuth)

		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		gw = gateway.NewFirestoreGateway(firestoreClient)
	} else {
		if cfg.Environment != "development" {
			log.Fatalf("FIREBASE_PROJECT_ID is required outside development")
		}
		log.Printf("No Firebase project configured; running with the in-memory gateway")
		gw = gateway.NewMemoryGateway()
	}

	entityStore := store.NewEntityStore(gw)
	if err := entityStore.Hydrate(ctx); err != nil {
		log.Fatalf("Failed to hydrate entity store: %v", err)
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	var advisor service.AdvisoryService
	if cfg.FirebaseProject != "" && cfg.GeminiLocation != "" {
		a, err := genai.NewAdvisor(ctx, cfg.FirebaseProject, cfg.GeminiLocation, cfg.GeminiModel)
		if err != nil {
			log.Printf("Advisory service disabled: %v", err)
		} else {
			advisor = a
		}
	}

	notifier := usecase.NewNotifier(entityStore.Notifications(), wsManager)

	rateLimiter := ratelimit.NewRateLimiter()
	defer rateLimiter.Stop()

	listingUseCase := usecase.NewListingUseCase(
		entityStore.Listings(),
		entityStore.SavedListings(),
		entityStore.ViewHistory(),
		entityStore.Offers(),
		entityStore.Users(),
		notifier,
		cfg.BoostDuration,
	)
	offerUseCase := usecase.NewOfferUseCase(
		entityStore.Offers(),
		entityStore.Listings(),
		entityStore.Chats(),
		entityStore.Users(),
		notifier,
		rateLimiter,
	)
	chatUseCase := usecase.NewChatUseCase(
		entityStore.Chats(),
		entityStore.Listings(),
		entityStore.Broadcasts(),
		entityStore.Users(),
		wsManager,
		rateLimiter,
	)
	broadcastUseCase := usecase.NewBroadcastUseCase(entityStore.Broadcasts(), entityStore.Users())
	notificationUseCase := usecase.NewNotificationUseCase(entityStore.Notifications())
	advisoryUseCase := usecase.NewAdvisoryUseCase(advisor, rateLimiter)
	userUseCase := usecase.NewUserUseCase(entityStore.Users())

	handler.Setup(
		listingUseCase,
		offerUseCase,
		chatUseCase,
		broadcastUseCase,
		notificationUseCase,
		advisoryUseCase,
		userUseCase,
	)
	handler.SetupDevTokenHandler(authClient)

	listingUseCase.StartBoostSweeper(ctx, cfg.SweepInterval)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	wsHandler := handler.NewWebSocketHandler(wsManager)

	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)
	router.SetupDevRouter(e, cfg.Environment)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

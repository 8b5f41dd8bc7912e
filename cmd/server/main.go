// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/kildre/talktalk/internal/config"
	"github.com/kildre/talktalk/internal/handlers"
	"github.com/kildre/talktalk/internal/middleware"
	"github.com/kildre/talktalk/internal/services"
	"github.com/kildre/talktalk/internal/services/ai"
	"github.com/kildre/talktalk/internal/services/tts"
	"github.com/kildre/talktalk/internal/store"
)

func main() {
	cfg := config.Load()
	logger := services.NewLogger("talktalk-server")

	// --- Conversation store ---
	var conversationStore store.ConversationStore
	switch cfg.StoreBackend {
	case "sqlite":
		s, err := store.NewSQLiteStore()
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize conversation store: %v", err)
		}
		conversationStore = s
	default:
		conversationStore = store.NewMemoryStore()
	}

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.ChatAPIKey
	aiConfig.BaseURL = cfg.ChatBaseURL
	aiConfig.Model = cfg.ChatModel
	aiConfig.MaxTokens = cfg.ChatMaxTokens
	aiProvider, err := ai.NewOpenAIProvider(aiConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize completion provider: %v", err)
	}

	ttsConfig := tts.DefaultConfig()
	ttsConfig.Provider = cfg.TTSProvider
	ttsConfig.GoogleAPIKey = cfg.GoogleTTSAPIKey
	ttsConfig.AzureKey = cfg.AzureSpeechKey
	ttsConfig.AzureRegion = cfg.AzureSpeechRegion
	ttsProvider, err := tts.NewProvider(ttsConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize TTS provider: %v", err)
	}

	// --- Handlers ---
	chatHandler := handlers.NewChatHandler(aiProvider, logger)
	ttsHandler := handlers.NewTTSHandler(ttsProvider, logger)
	conversationHandler := handlers.NewConversationHandler(conversationStore)
	healthHandler := handlers.NewHealthHandler(ttsProvider.Name())

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	r.HandleFunc("/health", healthHandler.HandleHealth).Methods("GET")
	r.HandleFunc("/chat", chatHandler.HandleChat).Methods("POST", "OPTIONS")
	r.HandleFunc("/tts", ttsHandler.HandleSynthesize).Methods("POST", "OPTIONS")
	r.HandleFunc("/conversations", conversationHandler.ListConversations).Methods("GET")
	r.HandleFunc("/conversations", conversationHandler.CreateConversation).Methods("POST")
	r.HandleFunc("/conversations/{id}/messages", conversationHandler.GetConversationMessages).Methods("GET")
	r.HandleFunc("/conversations/{id}", conversationHandler.DeleteConversation).Methods("DELETE")

	// --- Server Configuration ---
	port := ":3000"
	if cfg.ServerPort != "" {
		port = ":" + cfg.ServerPort
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("TalkTalk server starting on port %s", port)
	log.Printf("Chat endpoint:   POST http://localhost%s/chat", port)
	log.Printf("Speech endpoint: POST http://localhost%s/tts (%s)", port, ttsProvider.Name())

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

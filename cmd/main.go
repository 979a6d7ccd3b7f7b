package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feijonts/aps-5-api/configs"
	"github.com/feijonts/aps-5-api/internal/daemon"
	"github.com/feijonts/aps-5-api/internal/db"
	"github.com/feijonts/aps-5-api/internal/handlers"
	"github.com/feijonts/aps-5-api/internal/middleware"
	"github.com/feijonts/aps-5-api/internal/repository"
	"github.com/feijonts/aps-5-api/internal/service"
	"github.com/feijonts/aps-5-api/internal/utils"
)

func main() {
	cfg := configs.LoadConfig()
	db.Connect(cfg.MongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureIndexes(ctx, cfg.DBName); err != nil {
		log.Printf("WARNING: ensure indexes failed: %v", err)
	}
	cancel()

	r := mux.NewRouter()
	r.Use(middleware.JSONMiddleware)
	r.Use(middleware.MetricsMiddleware)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	auditCol := db.GetCollection(cfg.DBName, db.ColAuditLogs)
	auditLogger := utils.Logger{Collection: auditCol}

	exporter := daemon.LogExporter{Coll: auditCol}
	exporter.InitLogExporter()

	userRepo := repository.NewUserRepository(db.GetCollection(cfg.DBName, db.ColUsers))
	bikeRepo := repository.NewBikeRepository(db.GetCollection(cfg.DBName, db.ColBikes))
	loanService := service.NewLoanService(userRepo, bikeRepo)

	userHandler := handlers.NewUserHandler(userRepo, auditLogger)

	r.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	r.HandleFunc("/users", userHandler.CreateUser).Methods("POST")
	r.HandleFunc("/users/{id}", userHandler.GetUser).Methods("GET")
	r.HandleFunc("/users/{id}", userHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/users/{id}", userHandler.DeleteUser).Methods("DELETE")

	bikeHandler := handlers.NewBikeHandler(bikeRepo, auditLogger)

	r.HandleFunc("/bikes", bikeHandler.ListBikes).Methods("GET")
	r.HandleFunc("/bikes", bikeHandler.CreateBike).Methods("POST")
	r.HandleFunc("/bikes/{id}", bikeHandler.GetBike).Methods("GET")
	r.HandleFunc("/bikes/{id}", bikeHandler.UpdateBike).Methods("PUT")
	r.HandleFunc("/bikes/{id}", bikeHandler.DeleteBike).Methods("DELETE")

	loanHandler := handlers.NewLoanHandler(loanService, auditLogger)

	r.HandleFunc("/loans", loanHandler.ListLoans).Methods("GET")
	r.HandleFunc("/loans", loanHandler.StartLoan).Methods("POST")
	r.HandleFunc("/loans/{id}", loanHandler.GetLoan).Methods("GET")
	r.HandleFunc("/loans/{id}", loanHandler.EndLoan).Methods("DELETE")

	metricsHandler := handlers.MetricsHandler{
		UserCol: db.GetCollection(cfg.DBName, db.ColUsers),
		BikeCol: db.GetCollection(cfg.DBName, db.ColBikes),
	}

	r.HandleFunc("/admin/metrics", metricsHandler.GetMetrics).Methods("GET")

	var server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("Server starting on port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		log.Printf("WARNING: mongo disconnect failed: %v", err)
	}
	log.Println("Server shut down.")
}

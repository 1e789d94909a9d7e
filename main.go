package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/beldeveloper/app-promoter/controller"
	"github.com/beldeveloper/app-promoter/model"
	"github.com/beldeveloper/app-promoter/provider/rest"
	"github.com/beldeveloper/app-promoter/service/marshaller"
	"github.com/jackc/pgx/v4/pgxpool"
)

func main() {
	c, err := InitializeController()
	if err != nil {
		log.Fatalf("main: %v\n", err)
	}
	ctx := context.Background()
	go c.SweepConfirmationsJob(ctx)
	runHttpServer(c)
}

func postgresConn() (*pgxpool.Pool, error) {
	pgs := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("APP_PROMOTER_DB_HOST"),
		os.Getenv("APP_PROMOTER_DB_PORT"),
		os.Getenv("APP_PROMOTER_DB_USER"),
		os.Getenv("APP_PROMOTER_DB_PASSWORD"),
		os.Getenv("APP_PROMOTER_DB_NAME"),
	)
	return pgxpool.Connect(context.Background(), pgs)
}

func postgresSchema() model.PgSchema {
	return model.PgSchema(os.Getenv("APP_PROMOTER_DB_SCHEMA"))
}

func stateDir() model.StateDir {
	return model.StateDir(strings.TrimRight(os.Getenv("APP_PROMOTER_STATE_DIR"), "/"))
}

func auditLogPath() model.AuditLogPath {
	return model.AuditLogPath(os.Getenv("APP_PROMOTER_AUDIT_LOG"))
}

func repoDir() model.RepoDir {
	return model.RepoDir(strings.TrimRight(os.Getenv("APP_PROMOTER_REPO_DIR"), "/"))
}

func loadSettings(m marshaller.Service) (model.Settings, error) {
	var s model.Settings
	path := os.Getenv("APP_PROMOTER_CONFIG_FILE")
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("main: read config: %w", err)
	}
	err = m.Unmarshal(data, &s)
	if err != nil {
		return s, fmt.Errorf("main: parse config: %w", err)
	}
	return s, nil
}

func roleTable(s model.Settings) model.RoleTable {
	return s.Roles
}

func confirmationTTL(s model.Settings) time.Duration {
	return s.ConfirmationTTL()
}

func runHttpServer(c controller.Service) {
	httpPort := os.Getenv("APP_PROMOTER_HTTP_PORT")
	crtFile := os.Getenv("APP_PROMOTER_HTTPS_CRT")
	keyFile := os.Getenv("APP_PROMOTER_HTTPS_KEY")
	srv := &http.Server{
		Addr:    ":" + httpPort,
		Handler: rest.CreateRouter(c),
	}
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		var err error
		if len(crtFile) > 0 {
			err = srv.ListenAndServeTLS(crtFile, keyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("main: serve http: %v; port = %s\n", err, httpPort)
		}
	}()
	log.Printf("Listening :%s for HTTP connections...\n", httpPort)
	<-done
	log.Print("Stopping the application...\n")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("main: server shutdown: %v\n", err)
	}
}

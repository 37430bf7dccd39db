package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Jpmac110205/jarvis/internal/adapters/driving/httpapi"
	"github.com/Jpmac110205/jarvis/internal/connectors/google"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
	"github.com/Jpmac110205/jarvis/internal/logger"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for the web frontend",
	Long: `Exposes the chat endpoints and, when CLIENT_ID and CLIENT_SECRET are
set, the Google Calendar and Tasks pass-through. The server is
single-user: one shared conversation per process.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, err := buildChatService()
	if err != nil {
		return err
	}

	cfg := httpapi.Config{
		Port:        servePort,
		FrontendURL: configStore.GetString(driven.ConfigKeyFrontendURL),
	}
	if cfg.Port == 0 {
		cfg.Port = configStore.GetInt(driven.ConfigKeyServePort)
	}

	// Google integration is optional; absent credentials disable it
	var (
		auth     *google.Authenticator
		calendar driven.CalendarService
		tasks    driven.TasksService
	)
	if a, err := google.NewAuthenticatorFromEnv(); err == nil {
		auth = a
		calendar = google.NewCalendarRelay(a)
		tasks = google.NewTasksRelay(a)
	} else {
		logger.Info("Google integration disabled: %v", err)
	}

	srv := httpapi.New(cfg, svc, auth, calendar, tasks)

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		cmd.Println("Shutting down...")
		_ = srv.Shutdown() //nolint:errcheck
	}()

	return srv.Run()
}

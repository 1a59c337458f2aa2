package cmd

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/cobra"

	"github.com/mpryce/ttedit/internal/handlers"
	"github.com/mpryce/ttedit/internal/model"
	"github.com/mpryce/ttedit/internal/store"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a stub timetable backend",
	Long: `Serve runs a small server implementing the series endpoints the
client consumes: GET /series/:id/list-events and POST /series/:id/edit. It
keeps events in memory by default, seeded with a demo series; set
DATABASE_URL to persist them in Postgres instead.`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
}

func runServe(cmd *cobra.Command, args []string) {
	// Use PORT env var if set, otherwise use flag value
	if envPort := os.Getenv("PORT"); envPort != "" && port == "8080" {
		port = envPort
	}

	var events store.EventStore
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := store.NewDB(dsn)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		sqlStore := store.NewEventSQLStore(db)
		if err := sqlStore.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to prepare schema: %v", err)
		}
		events = sqlStore
	} else {
		mem := store.NewMemoryStore()
		seedDemoSeries(mem)
		events = mem
	}

	app := fiber.New(fiber.Config{
		AppName: "ttedit stub backend",
	})

	app.Use(logger.New())

	app.Get("/series/:id/list-events", handlers.ListEventsHandler(events))
	app.Post("/series/:id/edit", handlers.SaveEventsHandler(events))

	log.Printf("Starting stub backend on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func seedDemoSeries(mem *store.MemoryStore) {
	mem.Seed("algorithms-1a", []model.EventRecord{
		{
			Title: "Algorithms I", Location: "LT1", Type: "lecture",
			People: "Dr Hartley", Week: "1", Term: "michaelmas",
			Day: "thursday", StartHour: "09", StartMinute: "00",
			EndHour: "10", EndMinute: "00",
		},
		{
			Title: "Algorithms I", Location: "LT1", Type: "lecture",
			People: "Dr Hartley", Week: "1", Term: "michaelmas",
			Day: "friday", StartHour: "09", StartMinute: "00",
			EndHour: "10", EndMinute: "00",
		},
		{
			Title: "Examples class", Location: "Intel Lab", Type: "class",
			People: "Dr Hartley, R. Patel", Week: "2", Term: "michaelmas",
			Day: "monday", StartHour: "14", StartMinute: "00",
			EndHour: "15", EndMinute: "30",
		},
	})
}

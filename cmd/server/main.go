package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/PabodaWA/CricketXpert-sub001/internal/adapters/discord"
	"github.com/PabodaWA/CricketXpert-sub001/internal/adapters/httpapi"
	"github.com/PabodaWA/CricketXpert-sub001/internal/application"
	"github.com/PabodaWA/CricketXpert-sub001/internal/config"
	"github.com/PabodaWA/CricketXpert-sub001/internal/infrastructure/database"
	"github.com/PabodaWA/CricketXpert-sub001/internal/infrastructure/i18n"
	"github.com/PabodaWA/CricketXpert-sub001/internal/infrastructure/memory"
	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/output"
	"github.com/PabodaWA/CricketXpert-sub001/pkg/tz"
)

// logNotifier is the dev fallback when no Discord token is configured: it
// logs instead of delivering.
type logNotifier struct{}

func (logNotifier) Send(_ context.Context, contact string, msg output.Message) error {
	log.Printf("notify (dry-run) to=%s subject=%q", contact, msg.Subject)
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	ctx := context.Background()

	var (
		store       output.SessionStore
		directory   output.UserDirectory
		enrollments output.EnrollmentRepository
	)
	switch cfg.Store {
	case "memory":
		mem := memory.NewStore()
		ids := memory.Seed(mem, time.Now().In(tz.Colombo))
		log.Printf("✅ In-memory store seeded (%d sessions).", len(ids))
		store, directory, enrollments = mem, mem, mem
	default:
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Database initialization error: %v", err)
		}
		defer pool.Close()
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatalf("❌ Migration error: %v", err)
		}
		store = database.NewSessionStore(pool)
		directory = database.NewUserDirectory(pool)
		enrollments = database.NewEnrollmentRepository(pool)
	}

	var notifier output.Notifier = logNotifier{}
	if cfg.DiscordToken != "" {
		n, err := discord.NewNotifier(cfg.DiscordToken)
		if err != nil {
			log.Fatalf("❌ Discord session error: %v", err)
		}
		notifier = n
		log.Println("✅ Discord notifier ready.")
	} else {
		log.Println("TOKEN not set, notifications are logged only.")
	}

	clock := output.ClockFunc(func() time.Time { return time.Now().In(tz.Colombo) })
	composer := i18n.NewComposer(cfg.DefaultLocale)
	resolver := application.NewIdentityResolver(directory)
	dispatcher := application.NewDispatcher(notifier)
	attendance := application.NewAttendanceService(store, resolver, composer, dispatcher, clock)
	progress := application.NewProgressService(enrollments)

	server := httpapi.NewServer(attendance, progress)
	log.Printf("✅ Listening on :%s", cfg.Port)
	if err := server.Run(cfg.Port); err != nil {
		log.Printf("❌ Server error: %v", err)
		os.Exit(1)
	}
}

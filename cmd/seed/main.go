package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"website-editor/internal/catalog"
	"website-editor/internal/config"
	models "website-editor/internal/domain/models/editor"
	editorSvc "website-editor/internal/domain/services/editor"
	"website-editor/internal/repository/postgres"
	postgresEditor "website-editor/internal/repository/postgres/editor"
	serviceEditor "website-editor/internal/service/editor"
)

type seedUser struct {
	name  string
	image string
}

type seedUi struct {
	owner     int
	uiType    string
	prompt    string
	revisions []seedRevision
}

type seedRevision struct {
	parent string
	prompt string
	code   string
}

var users = []seedUser{
	{name: "Ada", image: "https://avatars.example.com/ada.png"},
	{name: "Grace", image: "https://avatars.example.com/grace.png"},
	{name: "Linus", image: "https://avatars.example.com/linus.png"},
}

var uis = []seedUi{
	{
		owner:  0,
		uiType: "shadcn",
		prompt: "A pricing page with three tiers",
		revisions: []seedRevision{
			{parent: "a", prompt: "A pricing page with three tiers", code: `<section className="grid grid-cols-3 gap-4">...</section>`},
			{parent: "a-1", prompt: "Highlight the middle tier", code: `<section className="grid grid-cols-3 gap-4"><Card highlighted /></section>`},
			{parent: "a-1", prompt: "Use a dark theme instead", code: `<section className="dark grid grid-cols-3 gap-4">...</section>`},
		},
	},
	{
		owner:  1,
		uiType: "tailwind",
		prompt: "Login form with social buttons",
		revisions: []seedRevision{
			{parent: "a", prompt: "Login form with social buttons", code: `<form class="space-y-4">...</form>`},
			{parent: "precise-a", prompt: "Login form, precise variant", code: `<form class="space-y-2">...</form>`},
		},
	},
	{
		owner:  2,
		uiType: "nextui",
		prompt: "Dashboard sidebar with collapsible groups",
		revisions: []seedRevision{
			{parent: "a", prompt: "Dashboard sidebar with collapsible groups", code: `<aside>...</aside>`},
		},
	},
}

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Clear all rows (keep schema)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: cannot run destructive operations (--drop-tables or --clear-data) in production")
	}

	logger := config.NewLogger(cfg.Environment, os.Stdout)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Printf("Schema ready (prefix: %s)", cfg.TablePrefix)

	if *schemaOnly {
		return
	}

	if *clearData {
		if err := postgres.TruncateData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared")
		return
	}

	registry, err := catalog.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	uiRepo := postgresEditor.NewUiRepository(repoConfig)
	subPromptRepo := postgresEditor.NewSubPromptRepository(repoConfig)
	engagementRepo := postgresEditor.NewEngagementRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)
	subPromptService := serviceEditor.NewSubPromptService(uiRepo, subPromptRepo, txManager, registry, logger)

	userIDs, err := seedUsers(ctx, pool, tables)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	var uiIDs []string
	for _, s := range uis {
		if !registry.HasUiType(s.uiType) {
			log.Fatalf("Unknown ui type %q", s.uiType)
		}

		ui := &models.Ui{
			OwnerID: userIDs[s.owner],
			UiType:  s.uiType,
			Prompt:  s.prompt,
			Public:  true,
		}
		if err := uiRepo.Create(ctx, ui); err != nil {
			log.Fatalf("Failed to create ui: %v", err)
		}
		uiIDs = append(uiIDs, ui.ID)

		for _, rev := range s.revisions {
			sp, err := subPromptService.CreateSubPrompt(ctx, &editorSvc.CreateSubPromptRequest{
				UserID:      ui.OwnerID,
				UiID:        ui.ID,
				SubPrompt:   rev.prompt,
				ParentSubID: rev.parent,
				Code:        rev.code,
			})
			if err != nil {
				log.Fatalf("Failed to create revision for %s: %v", ui.ID, err)
			}
			log.Printf("  revision %s on %q", sp.SubID, s.prompt)
		}
	}

	// Everyone likes everyone else's work
	for i, userID := range userIDs {
		for j, uiID := range uiIDs {
			if uis[j].owner == i {
				continue
			}
			if _, err := engagementRepo.ToggleLike(ctx, userID, uiID); err != nil {
				log.Fatalf("Failed to like ui: %v", err)
			}
		}
	}

	log.Printf("Seeded %d users and %d uis", len(userIDs), len(uiIDs))
}

// seedUsers inserts profile rows; in a deployed system these come from auth
func seedUsers(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) ([]string, error) {
	query := fmt.Sprintf(`INSERT INTO %s (id, name, image) VALUES ($1, $2, $3)`, tables.Users)

	ids := make([]string, 0, len(users))
	for _, u := range users {
		id := uuid.NewString()
		if _, err := pool.Exec(ctx, query, id, u.name, u.image); err != nil {
			return nil, fmt.Errorf("insert user %s: %w", u.name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

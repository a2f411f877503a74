package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"govlens/backend/internal/analysis"
	"govlens/backend/internal/complaint"
	"govlens/backend/internal/models"
	"govlens/backend/internal/storage"

	"github.com/redis/go-redis/v9"
)

// Operator CLI against the same storage as the service. Postgres is not
// needed here; audit rows are skipped when running without it.
func main() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr, Password: os.Getenv("REDIS_PASSWORD")})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("failed to connect Redis: %v", err)
	}

	storageSvc := storage.NewStorageService(nil, rdb)
	store := complaint.NewStore(storageSvc, nil)
	if _, err := store.LoadAll(); err != nil {
		log.Fatalf("failed to load complaints: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: list | get <id> | transition <id> <stage> [officer] [note] | seed | summary")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "list":
		for _, c := range store.All() {
			fmt.Printf("%s  %-12s  %-24s  %s\n", c.ID, c.Status, c.AIAnalysis.PrimaryDepartment, c.Issue.Location)
		}
	case "get":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin get <complaint_id>")
			os.Exit(1)
		}
		c, err := store.FindByID(os.Args[2])
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		fmt.Printf("%s (%s)\n%s - %s\n", c.ID, c.Status, c.Issue.Location, c.Issue.Description)
		for _, e := range c.Timeline {
			fmt.Printf("  %s  %-12s  %s  %s\n", e.Timestamp.Format("2006-01-02 15:04"), e.Stage, e.Officer, e.Action)
		}
	case "transition":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin transition <complaint_id> <stage> [officer] [note]")
			os.Exit(1)
		}
		officer := "Admin"
		if len(os.Args) > 4 {
			officer = os.Args[4]
		}
		note := ""
		if len(os.Args) > 5 {
			note = os.Args[5]
		}
		engine := complaint.NewEngine(store, storageSvc)
		updated, err := engine.Transition(os.Args[2], models.Status(os.Args[3]), officer, note)
		if err != nil {
			log.Fatalf("Error transitioning complaint: %v", err)
		}
		fmt.Printf("Complaint %s is now %s (%d timeline events).\n", updated.ID, updated.Status, len(updated.Timeline))
	case "seed":
		seeded := complaint.NewStore(storageSvc, complaint.DefaultSeed)
		if _, err := seeded.LoadAll(); err != nil {
			log.Fatalf("Error seeding demo data: %v", err)
		}
		fmt.Println("Seed check complete (existing data is never overwritten).")
	case "summary":
		s := analysis.Summarize(store.All())
		fmt.Printf("Total: %d  Resolved: %d (%.0f%%)  Est. cost: ₹%.0f\n",
			s.Total, s.Resolved, s.ResolutionRate*100, s.TotalEstimatedCost)
		for dept, n := range s.ByDepartment {
			fmt.Printf("  %-28s %d\n", dept, n)
		}
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

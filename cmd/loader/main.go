package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ApenasAngelo/AirbnDB-backend/internal/config"
	"github.com/ApenasAngelo/AirbnDB-backend/internal/database"
	"github.com/ApenasAngelo/AirbnDB-backend/internal/importer"
)

func main() {
	log.SetFlags(log.LstdFlags)

	args := os.Args[1:]
	if len(args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <listings.csv> <calendar.csv> <reviews.csv>\n", os.Args[0])
		os.Exit(1)
	}
	listings, calendar, reviews := args[0], args[1], args[2]

	if missing := missingFiles(listings, calendar, reviews); len(missing) > 0 {
		for _, path := range missing {
			fmt.Fprintf(os.Stderr, "File not found: %s\n", path)
		}
		os.Exit(1)
	}

	configPath := getEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", configPath, err)
	}

	fmt.Println("About to import:")
	fmt.Printf("  listings: %s\n", listings)
	fmt.Printf("  calendar: %s\n", calendar)
	fmt.Printf("  reviews:  %s\n", reviews)
	fmt.Printf("Target database: %s:%d/%s\n",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)

	fmt.Print("Continue? (y/N): ")
	if !confirm(os.Stdin) {
		fmt.Println("Aborted.")
		os.Exit(1)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	sqlDB, err := db.SQL()
	if err != nil {
		log.Fatalf("Failed to access connection pool: %v", err)
	}

	// The whole run rides one connection so the session-level check
	// toggles apply to every statement.
	ctx := context.Background()
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		log.Fatalf("Failed to obtain connection: %v", err)
	}
	defer conn.Close()

	runner := importer.NewRunner(importer.NewSQLStore(ctx, conn))
	if err := runner.Run(listings, calendar, reviews); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	if n := runner.Stats().Errors; n > 0 {
		log.Printf("Import completed with %d row errors", n)
	}
}

// missingFiles returns the paths that do not exist on disk.
func missingFiles(paths ...string) []string {
	var missing []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}
	return missing
}

// confirm reads one line and accepts the usual affirmatives in English
// and Portuguese. Anything else, including EOF, declines.
func confirm(in io.Reader) bool {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

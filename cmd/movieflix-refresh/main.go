// Command movieflix-refresh backfills missing catalog metadata.
//
// It scans the content table for entries with no overview, poster,
// rating or IMDb id, asks TMDb and OMDb for the missing pieces and
// writes them back. Run it from cron or by hand; it exits when done.
package main

import (
	"flag"
	"log"

	"movieflix/internal/config"
	"movieflix/internal/db"
	"movieflix/internal/metadata"
	"movieflix/internal/repository"
)

func main() {
	limit := flag.Int("limit", 50, "maximum number of entries to refresh")
	dryRun := flag.Bool("dry-run", false, "look up metadata but do not write changes")
	flag.Parse()

	cfg := config.Load()
	if cfg.DemoMode {
		log.Fatal("refresh does not run in demo mode")
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	content := repository.NewContentRepository(database)
	enricher := metadata.NewEnricher(
		metadata.NewTMDBClient(cfg.TMDBAPIKey, cfg.TMDBLanguage),
		metadata.NewOMDBClient(cfg.OMDBAPIKey),
		cfg.TMDBAltLanguage,
	)
	if !enricher.TMDBConfigured() && !enricher.OMDBConfigured() {
		log.Fatal("no metadata provider configured, set TMDB_API_KEY or OMDB_API_KEY")
	}

	entries, err := content.ListIncomplete(*limit)
	if err != nil {
		log.Fatalf("listing incomplete entries failed: %v", err)
	}
	if len(entries) == 0 {
		log.Println("[refresh] catalog is up to date")
		return
	}
	log.Printf("[refresh] found %d entries with missing metadata", len(entries))

	var updated, skipped, failed int
	for i := range entries {
		c := &entries[i]
		patch := enricher.BuildPatch(c)
		if patch == nil {
			skipped++
			continue
		}
		if *dryRun {
			log.Printf("[refresh] would update %q (%s)", c.Title, c.ID)
			updated++
			continue
		}
		if _, err := content.Update(c.ID, patch); err != nil {
			log.Printf("[refresh] update failed for %q (%s): %v", c.Title, c.ID, err)
			failed++
			continue
		}
		log.Printf("[refresh] updated %q (%s)", c.Title, c.ID)
		updated++
	}

	log.Printf("[refresh] done: %d updated, %d skipped, %d failed", updated, skipped, failed)
}

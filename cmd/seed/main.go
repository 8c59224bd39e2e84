// Command seed populates a development database with demo users and surveys.
package main

import (
	"flag"
	"log"

	"cohort/internal/config"
	"cohort/internal/database"
	"cohort/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	opts := seed.DefaultOptions
	flag.IntVar(&opts.Researchers, "researchers", opts.Researchers, "number of researcher accounts to create")
	flag.IntVar(&opts.Subjects, "subjects", opts.Subjects, "number of subject accounts to create")
	flag.IntVar(&opts.SurveysPerResearcher, "surveys", opts.SurveysPerResearcher, "surveys per researcher")
	flag.IntVar(&opts.MaxDays, "max-days", opts.MaxDays, "spread survey creation dates over this many days")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed.NewFactory(db, opts).Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d researchers, %d subjects, %d surveys each (password: password123)",
		opts.Researchers, opts.Subjects, opts.SurveysPerResearcher)
}

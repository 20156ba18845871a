package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/mastrovia/devxtra-team/internal/config"
	"github.com/mastrovia/devxtra-team/internal/models"
	"github.com/mastrovia/devxtra-team/internal/services"
)

type row struct {
	ID   string
	Name string
}

func main() {
	dryRun := flag.Bool("dry-run", false, "only list the rows that would be updated")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := models.InitDB(&cfg.Database, "release")
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	fmt.Println("Connected to database successfully!")
	fmt.Println("")

	total := 0
	for _, table := range []string{models.TeamMember{}.TableName(), models.Student{}.TableName()} {
		n, err := backfill(db, table, *dryRun)
		if err != nil {
			log.Fatalf("Failed to backfill %s: %v", table, err)
		}
		total += n
	}

	fmt.Println("")
	if *dryRun {
		fmt.Printf("Dry run: %d rows would be updated\n", total)
		return
	}
	fmt.Printf("Done: %d rows updated\n", total)
}

// backfill sets the generated avatar on every row of table without one.
func backfill(db *gorm.DB, table string, dryRun bool) (int, error) {
	var rows []row
	if err := db.Table(table).Select("id, name").Where("avatar IS NULL OR avatar = ''").Find(&rows).Error; err != nil {
		return 0, err
	}

	fmt.Printf("%s: %d rows without avatar\n", table, len(rows))
	if dryRun || len(rows) == 0 {
		for _, r := range rows {
			fmt.Printf("  %-36s %s\n", r.ID, r.Name)
		}
		return len(rows), nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			if err := tx.Table(table).Where("id = ?", r.ID).Update("avatar", services.DefaultAvatar(r.Name)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

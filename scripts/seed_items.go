package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"grocery/internal/database"
	"grocery/internal/models"
	"grocery/internal/service"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// seedItem is one entry of the seed file.
type seedItem struct {
	Name     string `yaml:"name"`
	Quantity int64  `yaml:"quantity"`
	Category string `yaml:"category"`
}

type seedFile struct {
	Items []seedItem `yaml:"items"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		itemsPath = flag.String("items", "configs/items.yaml", "path to items.yaml")
		dbPath    = flag.String("db", "grocery.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*itemsPath)
	if err != nil {
		return fmt.Errorf("read items: %w", err)
	}
	items, err := parseSeed(data)
	if err != nil {
		return err
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, updated, err := seed(ctx, service.NewItemService(db, nil, &logger), items)
	if err != nil {
		return err
	}

	fmt.Printf("done: created=%d updated=%d\n", created, updated)
	return nil
}

func parseSeed(data []byte) ([]seedItem, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("no items in yaml")
	}
	return f.Items, nil
}

// seed creates every listed item, or updates quantity and category when an
// item with the same name (case-insensitive) is already on the list.
func seed(ctx context.Context, svc *service.ItemService, items []seedItem) (created, updated int, err error) {
	existing, err := svc.List(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("list items: %w", err)
	}
	byName := make(map[string]int64, len(existing))
	for _, it := range existing {
		byName[strings.ToLower(strings.TrimSpace(it.Name))] = it.ID
	}

	for _, it := range items {
		key := strings.ToLower(strings.TrimSpace(it.Name))
		if key == "" {
			continue
		}

		if id, ok := byName[key]; ok {
			patch := models.ItemPatch{Category: models.Some(it.Category)}
			if it.Quantity > 0 {
				patch.Quantity = models.Some(it.Quantity)
			}
			if _, err := svc.Update(ctx, id, patch); err != nil {
				return created, updated, fmt.Errorf("update %s: %w", it.Name, err)
			}
			updated++
			continue
		}

		in := models.ItemCreate{Name: it.Name, Category: models.Some(it.Category)}
		if it.Quantity > 0 {
			in.Quantity = models.Some(it.Quantity)
		}
		item, err := svc.Create(ctx, in)
		if err != nil {
			return created, updated, fmt.Errorf("create %s: %w", it.Name, err)
		}
		byName[key] = item.ID
		created++
	}

	return created, updated, nil
}

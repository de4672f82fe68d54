package restaurant

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/appetiteclub/apt"
)

type bootstrapSeedDocument struct {
	MenuItems []menuItemSeed `json:"menu_items"`
	Staff     []staffSeed    `json:"staff"`
	Tables    []tableSeed    `json:"tables"`
}

type menuItemSeed struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Ingredients []string `json:"ingredients,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`
}

type staffSeed struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

type tableSeed struct {
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
	Location string `json:"location,omitempty"`
}

func loadSeedDocument(seedFS embed.FS) (*bootstrapSeedDocument, error) {
	seedBytes, err := seedFS.ReadFile("seed.json")
	if err != nil {
		return nil, fmt.Errorf("read seed.json: %w", err)
	}

	if len(seedBytes) == 0 {
		return nil, errors.New("seed file is empty")
	}

	var doc bootstrapSeedDocument
	if err := json.Unmarshal(seedBytes, &doc); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	return &doc, nil
}

// ApplySeeds ensures the reference menu items and staff, and the
// predefined tables, exist. Each entity is keyed by its natural
// identifier so reapplying the seeds is a no-op.
func ApplySeeds(ctx context.Context, repos Repos, seedFS embed.FS, logger apt.Logger) error {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	doc, err := loadSeedDocument(seedFS)
	if err != nil {
		return err
	}

	for _, s := range doc.Tables {
		if err := s.ensureTable(ctx, repos.TableRepo, logger); err != nil {
			return err
		}
	}

	for _, s := range doc.MenuItems {
		if err := s.ensureMenuItem(ctx, repos.MenuItemRepo, logger); err != nil {
			return err
		}
	}

	for _, s := range doc.Staff {
		if err := s.ensureStaff(ctx, repos.StaffRepo, logger); err != nil {
			return err
		}
	}

	return nil
}

func (s tableSeed) ensureTable(ctx context.Context, repo TableRepo, logger apt.Logger) error {
	number := strings.TrimSpace(s.Number)
	if number == "" {
		logger.Info("Skipping seed table with empty number")
		return nil
	}

	existing, err := repo.GetByNumber(ctx, number)
	if err != nil {
		return fmt.Errorf("check seed table %s: %w", number, err)
	}
	if existing != nil {
		return nil
	}

	table := NewTable()
	table.Number = number
	table.Capacity = s.Capacity
	table.Location = s.Location
	table.BeforeCreate()

	if err := repo.Create(ctx, table); err != nil {
		return fmt.Errorf("create seed table %s: %w", number, err)
	}

	logger.Info("Seed table created", "number", number, "id", table.ID.String())
	return nil
}

func (s menuItemSeed) ensureMenuItem(ctx context.Context, repo MenuItemRepo, logger apt.Logger) error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		logger.Info("Skipping seed menu item with empty name")
		return nil
	}

	items, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list menu items: %w", err)
	}
	for _, existing := range items {
		if existing.Name == name {
			return nil
		}
	}

	item := NewMenuItem()
	item.Name = name
	item.Description = s.Description
	item.Price = s.Price
	item.Category = s.Category
	if s.Ingredients != nil {
		item.Ingredients = s.Ingredients
	}
	if s.Allergens != nil {
		item.Allergens = s.Allergens
	}
	item.BeforeCreate()

	if err := repo.Create(ctx, item); err != nil {
		return fmt.Errorf("create seed menu item %s: %w", name, err)
	}

	logger.Info("Seed menu item created", "name", name, "id", item.ID.String())
	return nil
}

func (s staffSeed) ensureStaff(ctx context.Context, repo StaffRepo, logger apt.Logger) error {
	username := strings.TrimSpace(s.Username)
	if username == "" {
		logger.Info("Skipping seed staff with empty username")
		return nil
	}

	existing, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check seed staff %s: %w", username, err)
	}
	if existing != nil {
		return nil
	}

	staff := NewStaff()
	staff.Username = username
	staff.Password = s.Password
	staff.Role = s.Role
	staff.Name = s.Name
	staff.BeforeCreate()

	if err := repo.Create(ctx, staff); err != nil {
		return fmt.Errorf("create seed staff %s: %w", username, err)
	}

	logger.Info("Seed staff created", "username", username, "id", staff.ID.String())
	return nil
}

// SeedingFunc returns a lifecycle OnStart-compatible function which
// applies the reference seeds in the background. When seeding.demo is
// enabled it additionally opens a few tables with demo orders once the
// reference seeds are in place.
func SeedingFunc(seedCtx context.Context, repos Repos, seedFS embed.FS, config *apt.Config, logger apt.Logger) func(ctx context.Context) error {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	demoEnabled := false
	if config != nil {
		demoEnabled = config.GetStringOrDef("seeding.demo", "false") == "true"
	}

	return func(ctx context.Context) error {
		logger.Info("Starting seeding in background")
		go func() {
			if err := ApplySeeds(seedCtx, repos, seedFS, logger); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.Errorf("Seeding failed: %v", err)
				}
				return
			}
			logger.Info("Seeding completed successfully")

			if !demoEnabled {
				return
			}
			if err := ApplyDemoSeeds(seedCtx, repos, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("Demo seeding failed: %v", err)
			}
		}()
		return nil
	}
}

// StopFunc returns a lifecycle OnStop-compatible function which cancels
// any background seeding goroutine.
func StopFunc(cancelFunc context.CancelFunc) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if cancelFunc != nil {
			cancelFunc()
		}
		return nil
	}
}

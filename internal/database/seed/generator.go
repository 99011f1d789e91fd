package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/larder/larder/internal/models"
	"github.com/larder/larder/internal/services/inventory"
	"github.com/larder/larder/internal/util"
)

// Config configures the sample data generator.
type Config struct {
	Now        time.Time
	RandomSeed int64

	// MaxUnits caps how many lots of one product are stocked.
	MaxUnits int
	// ExpiredShare is the chance that a perishable lot is already past its
	// expiry date.
	ExpiredShare float64
	// CheckedShare is the chance that a shopping entry starts checked.
	CheckedShare float64
}

// DefaultConfig returns a configuration anchored at now.
func DefaultConfig(now time.Time) Config {
	return Config{
		Now:          now,
		RandomSeed:   1,
		MaxUnits:     3,
		ExpiredShare: 0.15,
		CheckedShare: 0.25,
	}
}

// Summary reports what Generate created.
type Summary struct {
	Inventory int
	Shopping  int
	Units     int
	Expired   int
}

// Generator stocks a larder through the inventory service.
type Generator struct {
	svc *inventory.Service
	cfg Config
	rng *rand.Rand

	summary Summary
}

// NewGenerator creates a new sample data generator.
func NewGenerator(svc *inventory.Service, cfg Config) *Generator {
	if cfg.MaxUnits < 1 {
		cfg.MaxUnits = 1
	}
	return &Generator{
		svc: svc,
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.RandomSeed)),
	}
}

// Generate creates the sample inventory and shopping list.
func (g *Generator) Generate(ctx context.Context) (Summary, error) {
	slog.Info("seeding sample larder", "seed", g.cfg.RandomSeed)

	for _, p := range Fridge {
		if err := g.stock(ctx, p, true); err != nil {
			return g.summary, err
		}
	}
	for _, p := range Pantry {
		if err := g.stock(ctx, p, false); err != nil {
			return g.summary, err
		}
	}
	for _, name := range Staples {
		amount := 1 + g.rng.Intn(3)
		_, err := g.svc.CreateEntry(ctx, inventory.CreateEntryInput{
			Name:   name,
			Type:   models.ListInventory,
			Amount: &amount,
		})
		if err != nil {
			return g.summary, fmt.Errorf("stocking %s: %w", name, err)
		}
		g.summary.Inventory++
	}
	for _, p := range ShoppingNeeds {
		if err := g.need(ctx, p); err != nil {
			return g.summary, err
		}
	}

	slog.Info("sample larder ready",
		"inventory", g.summary.Inventory,
		"shopping", g.summary.Shopping,
		"units", g.summary.Units,
		"expired", g.summary.Expired,
	)
	return g.summary, nil
}

// stock adds an inventory entry with one or more lots, oldest first.
func (g *Generator) stock(ctx context.Context, p Product, perishable bool) error {
	n := 1 + g.rng.Intn(g.cfg.MaxUnits)
	units := make([]models.Unit, n)

	for i := range units {
		units[i] = models.Unit{Quantity: p.PackSize, Measure: p.Measure}
		if p.ShelfLifeDays == 0 {
			continue
		}
		// Earlier lots were bought earlier, so they expire first.
		bought := -g.rng.Intn(p.ShelfLifeDays/2+1) - (n-i)*2
		if perishable && i == 0 && g.rng.Float64() < g.cfg.ExpiredShare {
			bought = -p.ShelfLifeDays - 1 - g.rng.Intn(3)
		}
		expiry := g.cfg.Now.AddDate(0, 0, bought+p.ShelfLifeDays)
		units[i].Expiry = util.FormatDate(expiry)
		if util.IsExpired(units[i].Expiry, g.cfg.Now) {
			g.summary.Expired++
		}
	}

	_, err := g.svc.CreateEntry(ctx, inventory.CreateEntryInput{
		Name:  p.Name,
		Type:  models.ListInventory,
		Units: units,
	})
	if err != nil {
		return fmt.Errorf("stocking %s: %w", p.Name, err)
	}
	g.summary.Inventory++
	g.summary.Units += n
	return nil
}

// need adds a shopping entry, sometimes already checked off.
func (g *Generator) need(ctx context.Context, p Product) error {
	unit := models.Unit{Quantity: p.PackSize, Measure: p.Measure}
	e, err := g.svc.CreateEntry(ctx, inventory.CreateEntryInput{
		Name:  p.Name,
		Type:  models.ListShopping,
		Units: []models.Unit{unit},
	})
	if err != nil {
		return fmt.Errorf("adding %s to shopping list: %w", p.Name, err)
	}
	g.summary.Shopping++
	g.summary.Units++

	if g.rng.Float64() < g.cfg.CheckedShare {
		if _, err := g.svc.SetCheckedCount(ctx, e.ID, e.Total()); err != nil {
			return fmt.Errorf("checking %s: %w", p.Name, err)
		}
	}
	return nil
}

// cmd/seed/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/dealerbridge/forecast-go/internal/repository/postgres"
	"github.com/dealerbridge/forecast-go/internal/types"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := postgres.NewDBFromURL(c.String("db-url"))
	if err != nil {
		return err
	}

	c.Context = context.WithValue(c.Context, types.DBKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(types.DBKey).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) *postgres.DB {
	db, _ := c.Context.Value(types.DBKey).(*postgres.DB)
	return db
}

var demoProducts = []struct {
	name      string
	sku       string
	price     float64
	costPrice float64
	stock     int
	baseQty   float64
	seasonal  float64 // amplitude of the yearly cycle, as a fraction of baseQty
}{
	{"Brake Pad Set", "BRK-1001", 89.90, 42.00, 240, 60, 0.15},
	{"Oil Filter", "FLT-2040", 14.50, 5.20, 900, 220, 0.10},
	{"Windshield Wiper Pair", "WPR-3300", 24.90, 9.80, 340, 90, 0.45},
	{"All-Season Tire", "TIR-4410", 129.00, 74.00, 120, 45, 0.60},
	{"Cabin Air Filter", "FLT-2055", 19.90, 7.10, 410, 75, 0.25},
	{"Battery 12V 70Ah", "BAT-5500", 159.00, 98.00, 60, 18, 0.35},
}

func seedMaster(c *cli.Context) error {
	db := dbFromContext(c)
	ctx := c.Context

	dealerName := c.String("dealer-name")

	var dealerID int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO dealers (name, region, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET updated_at = NOW()
		RETURNING id
	`, dealerName, c.String("region")).Scan(&dealerID)
	if err != nil {
		return fmt.Errorf("failed to seed dealer: %w", err)
	}

	for _, p := range demoProducts {
		var productID int64
		err := db.QueryRowContext(ctx, `
			INSERT INTO products (dealer_id, name, sku, price, cost_price, active)
			VALUES ($1, $2, $3, $4, $5, TRUE)
			ON CONFLICT (dealer_id, sku) DO UPDATE SET
				name = EXCLUDED.name,
				price = EXCLUDED.price,
				cost_price = EXCLUDED.cost_price
			RETURNING id
		`, dealerID, p.name, p.sku, p.price, p.costPrice).Scan(&productID)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.sku, err)
		}

		_, err = db.ExecContext(ctx, `
			INSERT INTO stock_levels (product_id, location, quantity)
			VALUES ($1, 'main', $2)
			ON CONFLICT (product_id, location) DO UPDATE SET quantity = EXCLUDED.quantity
		`, productID, p.stock)
		if err != nil {
			return fmt.Errorf("failed to seed stock for %s: %w", p.sku, err)
		}
	}

	log.Printf("seeded dealer %q (id=%d) with %d products", dealerName, dealerID, len(demoProducts))
	return nil
}

// seedHistory generates synthetic confirmed orders: one order per product
// per month, base demand modulated by a yearly cycle plus noise, so the
// seasonal extraction has a real pattern to find.
func seedHistory(c *cli.Context) error {
	db := dbFromContext(c)
	ctx := c.Context

	dealerID := c.Int64("dealer-id")
	months := c.Int("months")
	rng := rand.New(rand.NewSource(c.Int64("seed")))

	type productRow struct {
		ID  int64  `db:"id"`
		SKU string `db:"sku"`
	}
	var products []productRow
	if err := db.SelectContext(ctx, &products,
		`SELECT id, sku FROM products WHERE dealer_id = $1 AND active = TRUE`, dealerID); err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	if len(products) == 0 {
		return fmt.Errorf("dealer %d has no products; run the master seeder first", dealerID)
	}

	now := time.Now().UTC()
	inserted := 0

	for _, product := range products {
		profile := demoProducts[0]
		for _, p := range demoProducts {
			if p.sku == product.SKU {
				profile = p
				break
			}
		}

		for m := months; m >= 1; m-- {
			orderDate := time.Date(now.Year(), now.Month(), 15, 0, 0, 0, 0, time.UTC).AddDate(0, -m, 0)

			phase := 2 * math.Pi * float64(orderDate.Month()-1) / 12
			qty := profile.baseQty * (1 + profile.seasonal*math.Sin(phase))
			qty *= 1 + 0.1*(rng.Float64()*2-1)
			if qty < 1 {
				qty = 1
			}

			var orderID int64
			err := db.QueryRowContext(ctx, `
				INSERT INTO orders (dealer_id, status, order_date, created_at)
				VALUES ($1, 'delivered', $2, NOW())
				RETURNING id
			`, dealerID, orderDate).Scan(&orderID)
			if err != nil {
				return fmt.Errorf("failed to seed order: %w", err)
			}

			_, err = db.ExecContext(ctx, `
				INSERT INTO order_items (order_id, product_id, quantity)
				VALUES ($1, $2, $3)
			`, orderID, product.ID, int(math.Round(qty)))
			if err != nil {
				return fmt.Errorf("failed to seed order item: %w", err)
			}
			inserted++
		}
	}

	log.Printf("seeded %d order months across %d products for dealer %d", inserted, len(products), dealerID)
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with demo dealers, products and order history",
		Commands: []*cli.Command{
			{
				Name:  "master",
				Usage: "Seed a demo dealer with products and stock",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{Name: "dealer-name", Value: "Demo Motors"},
					&cli.StringFlag{Name: "region", Value: "north"},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedMaster,
			},
			{
				Name:  "history",
				Usage: "Generate synthetic monthly order history for a dealer",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.Int64Flag{Name: "dealer-id", Required: true},
					&cli.IntFlag{Name: "months", Value: 24},
					&cli.Int64Flag{Name: "seed", Value: 42, Usage: "RNG seed"},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedHistory,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

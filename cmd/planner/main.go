// cmd/planner/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dealerbridge/forecast-go/internal/cache"
	"github.com/dealerbridge/forecast-go/internal/repository/postgres"
	"github.com/dealerbridge/forecast-go/internal/service"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/dealerbridge/forecast-go/internal/types"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDealerIDFlag() *cli.Int64Flag {
	return &cli.Int64Flag{
		Name:     "dealer-id",
		Usage:    "Dealer to run against",
		Required: true,
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

func buildServices(db *postgres.DB) (*service.ForecastService, *service.PlanService) {
	portalRepo := postgres.NewPortalRepository(db)
	configRepo := postgres.NewConfigRepository(db)
	forecastRepo := postgres.NewForecastRepository(db)
	orderRepo := postgres.NewSuggestedOrderRepository(db)
	reports := cache.NewNoopReportCache()

	forecastSvc := service.NewForecastService(portalRepo, configRepo, portalRepo, portalRepo, forecastRepo, reports)
	planSvc := service.NewPlanService(portalRepo, configRepo, portalRepo, forecastRepo, orderRepo, reports, nil)

	return forecastSvc, planSvc
}

func printJSON(v interface{}) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}

func runForecast(c *cli.Context) error {
	forecastSvc, _ := buildServices(dbFromContext(c))

	ctx, cancel := context.WithTimeout(c.Context, 10*time.Minute)
	defer cancel()

	start := time.Now()
	result, err := forecastSvc.GenerateForecasts(ctx, c.Int64("dealer-id"), nil)
	if err != nil {
		return err
	}

	log.Printf("forecast run finished in %v (%d products, %d failed)",
		time.Since(start), len(result.Summaries), len(result.Failed))
	return printJSON(result)
}

func runPlan(c *cli.Context) error {
	_, planSvc := buildServices(dbFromContext(c))

	ctx, cancel := context.WithTimeout(c.Context, 10*time.Minute)
	defer cancel()

	start := time.Now()
	result, err := planSvc.GenerateOrderPlan(ctx, c.Int64("dealer-id"))
	if err != nil {
		return err
	}

	log.Printf("plan run finished in %v (%d orders)", time.Since(start), result.Summary.OrderCount)
	return printJSON(result)
}

func runBoth(c *cli.Context) error {
	if err := runForecast(c); err != nil {
		return err
	}
	return runPlan(c)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "planner",
		Usage: "Run demand forecasting and order planning for a dealer",
		Commands: []*cli.Command{
			{
				Name:   "forecast",
				Usage:  "Regenerate demand forecasts",
				Flags:  []cli.Flag{newDBURLFlag(), newDealerIDFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runForecast,
			},
			{
				Name:   "plan",
				Usage:  "Regenerate the suggested order plan from stored forecasts",
				Flags:  []cli.Flag{newDBURLFlag(), newDealerIDFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runPlan,
			},
			{
				Name:   "run",
				Usage:  "Regenerate forecasts, then the order plan",
				Flags:  []cli.Flag{newDBURLFlag(), newDealerIDFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runBoth,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

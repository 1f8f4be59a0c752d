// cmd/forecast/main.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/dealerhub/forecast-engine/internal/cache"
	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/repository"
	"github.com/dealerhub/forecast-engine/internal/repository/postgres"
	"github.com/dealerhub/forecast-engine/internal/service"
	"github.com/dealerhub/forecast-engine/internal/storage"
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
		Name:  "dealer-id",
		Usage: "Restrict the run to a single dealer (default: all active configs)",
	}
}

type runtime struct {
	db         *postgres.DB
	configRepo repository.ConfigRepository
	patterns   repository.PatternRepository
	forecasts  *service.ForecastService
	orders     *service.OrderService
}

// targetDealers resolves the dealer set for a batch run: the --dealer-id flag
// when present, otherwise every dealer with an active config.
func (rt *runtime) targetDealers(c *cli.Context) ([]int64, error) {
	if dealerID := c.Int64("dealer-id"); dealerID > 0 {
		return []int64{dealerID}, nil
	}

	configs, err := rt.configRepo.ListActive(c.Context)
	if err != nil {
		return nil, fmt.Errorf("failed to list active configs: %w", err)
	}

	dealerIDs := make([]int64, 0, len(configs))
	for _, cfg := range configs {
		dealerIDs = append(dealerIDs, cfg.DealerID)
	}
	return dealerIDs, nil
}

func connect(c *cli.Context) (*runtime, error) {
	db, err := sqlx.ConnectContext(c.Context, "pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	wrapped := postgres.WrapDB(db)
	configRepo := postgres.NewConfigRepository(wrapped)
	dealerRepo := postgres.NewDealerRepository(wrapped)
	demandRepo := postgres.NewDemandRepository(wrapped)
	forecastRepo := postgres.NewForecastRepository(wrapped)
	patternRepo := postgres.NewPatternRepository(wrapped)
	marketRepo := postgres.NewMarketRepository(wrapped)
	orderRepo := postgres.NewOrderRepository(wrapped)

	configService := service.NewConfigService(configRepo, dealerRepo)
	return &runtime{
		db:         wrapped,
		configRepo: configRepo,
		patterns:   patternRepo,
		forecasts: service.NewForecastService(
			configService, dealerRepo, demandRepo, forecastRepo,
			patternRepo, marketRepo, cache.NewNoopAnalysisCache(), storage.NewNoopArchiver(),
		),
		orders: service.NewOrderService(configService, demandRepo, forecastRepo, orderRepo),
	}, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	cliApp := &cli.App{
		Name:  "forecast",
		Usage: "Batch forecast and order plan regeneration",
		Commands: []*cli.Command{
			{
				Name:  "forecasts",
				Usage: "Regenerate demand forecasts for active dealer configs",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newDealerIDFlag(),
				},
				Action: runForecasts,
			},
			{
				Name:  "orders",
				Usage: "Regenerate suggested order plans for active dealer configs",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newDealerIDFlag(),
				},
				Action: runOrders,
			},
			{
				Name:  "pattern",
				Usage: "Save a named seasonal pattern from a JSON file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "JSON file with name, optional dealer_id and 12 factors",
						Required: true,
					},
				},
				Action: runSavePattern,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runForecasts(c *cli.Context) error {
	rt, err := connect(c)
	if err != nil {
		return err
	}
	defer rt.db.Close()

	dealerIDs, err := rt.targetDealers(c)
	if err != nil {
		return err
	}

	for _, dealerID := range dealerIDs {
		forecasts, err := rt.forecasts.GenerateDemandForecasts(c.Context, dealerID, nil)
		if err != nil {
			return fmt.Errorf("dealer %d: %w", dealerID, err)
		}
		log.Printf("dealer %d: regenerated %d forecasts", dealerID, len(forecasts))
	}
	return nil
}

func runOrders(c *cli.Context) error {
	rt, err := connect(c)
	if err != nil {
		return err
	}
	defer rt.db.Close()

	dealerIDs, err := rt.targetDealers(c)
	if err != nil {
		return err
	}

	for _, dealerID := range dealerIDs {
		plan, err := rt.orders.GenerateSuggestedOrderPlan(c.Context, dealerID)
		if err != nil {
			return fmt.Errorf("dealer %d: %w", dealerID, err)
		}
		log.Printf("dealer %d: %d suggestions (%d critical), estimated cost %s",
			dealerID, plan.Summary.TotalOrders, plan.Summary.CriticalCount, plan.Summary.EstimatedCost)
	}
	return nil
}

func runSavePattern(c *cli.Context) error {
	rt, err := connect(c)
	if err != nil {
		return err
	}
	defer rt.db.Close()

	raw, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read pattern file: %w", err)
	}

	var pattern domain.SeasonalPattern
	if err := json.Unmarshal(raw, &pattern); err != nil {
		return fmt.Errorf("failed to parse pattern file: %w", err)
	}
	if pattern.Name == "" {
		return fmt.Errorf("pattern name is required")
	}

	if err := rt.patterns.Save(c.Context, &pattern); err != nil {
		return fmt.Errorf("failed to save pattern: %w", err)
	}
	log.Printf("saved seasonal pattern %q", pattern.Name)
	return nil
}

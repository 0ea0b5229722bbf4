// seed_store importa la configuración AvaTax de las tiendas desde un CSV exportado
// del panel de administración (UTF-8 o ISO-8859-1) a la tabla avatax_store_config.
//
// Uso: go run ./cmd/seed_store --file tiendas.csv [--encoding auto|utf-8|iso-8859-1] [--dry-run]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/avatax-connector/internal/domain/repository"
	"github.com/jhoicas/avatax-connector/internal/infrastructure/postgres"
	"github.com/jhoicas/avatax-connector/pkg/config"
	"github.com/jhoicas/avatax-connector/pkg/logger"
)

func main() {
	file := pflag.StringP("file", "f", "stores.csv", "CSV con la configuración de las tiendas")
	encoding := pflag.String("encoding", encodingAuto, "auto | utf-8 | iso-8859-1")
	dryRun := pflag.Bool("dry-run", false, "solo validar, no escribir en la base de datos")
	pflag.Parse()

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	r, err := decodeInput(raw, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar CSV: %v\n", err)
		os.Exit(1)
	}
	stores, err := parseStoreConfigs(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if *dryRun {
		for _, s := range stores {
			fmt.Printf("%s\t%s\t%s\n", s.StoreID, s.CompanyCode, s.ServiceURL)
		}
		fmt.Printf("%d tiendas válidas (dry-run)\n", len(stores))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_store"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	err = postgres.NewTxRunner(pool).RunStoreConfigs(ctx, func(configs repository.StoreConfigRepository) error {
		for _, s := range stores {
			s.UpdatedAt = time.Now()
			if err := configs.Upsert(ctx, s); err != nil {
				return fmt.Errorf("tienda %s: %w", s.StoreID, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("importar tiendas")
	}
	log.Info().Int("stores", len(stores)).Str("file", *file).Msg("configuración de tiendas importada")
}

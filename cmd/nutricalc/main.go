package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	adapthttp "nutricalc/internal/adapter/http"
	"nutricalc/internal/adapter/memory"
	"nutricalc/internal/adapter/postgres"
	"nutricalc/internal/adapter/sqlite"
	"nutricalc/internal/app"
	"nutricalc/internal/domain"
	"nutricalc/internal/engine"
)

type config struct {
	addr        string
	engine      engine.Config
	databaseURL string
	sqlitePath  string
	corsOrigins []string
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("env file: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	calc, err := engine.New(cfg.engine)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	repo, closer, err := openStore(cfg)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	svc := app.NewCalculatorService(calc, repo)
	h := adapthttp.New(svc, cfg.corsOrigins).Handler()

	log.Printf("listening on %s (preset=%s)", cfg.addr, cfg.engine.Name)
	if err := serve(cfg.addr, h, closer); err != nil {
		log.Fatal(err)
	}
}

// serve runs the HTTP server until it stops, then closes the store.
func serve(addr string, h http.Handler, store io.Closer) error {
	err := http.ListenAndServe(addr, h)
	if cerr := store.Close(); cerr != nil {
		log.Printf("store close: %v", cerr)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func loadConfig() (config, error) {
	ec, err := engine.Preset(env("ENGINE_PRESET", engine.DefaultPresetName))
	if err != nil {
		return config{}, err
	}
	if v := os.Getenv("INCLUDE_MEALS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return config{}, errors.New("INCLUDE_MEALS must be a boolean")
		}
		ec.IncludeMeals = b
	}

	return config{
		addr:        env("ADDR", ":8080"),
		engine:      ec,
		databaseURL: os.Getenv("DATABASE_URL"),
		sqlitePath:  os.Getenv("SQLITE_PATH"),
		corsOrigins: splitList(env("CORS_ORIGINS", "*")),
	}, nil
}

// openStore picks postgres, then sqlite, then the in-memory store.
func openStore(cfg config) (domain.CalculationRepository, io.Closer, error) {
	switch {
	case cfg.databaseURL != "":
		db, err := postgres.Open(cfg.databaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("store: postgres")
		return db, db, nil
	case cfg.sqlitePath != "":
		db, err := sqlite.Open(cfg.sqlitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("store: sqlite %s", cfg.sqlitePath)
		return db, db, nil
	default:
		log.Printf("store: memory (records are lost on restart)")
		return memory.New(), io.NopCloser(nil), nil
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/auth"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/config"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/content"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/gallery"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/lookup"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/metrics"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/query"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/registration"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/server"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/store"
)

// sqlStore is what both SQL backends provide.
type sqlStore interface {
	registration.Store
	auth.CredentialVerifier
	SeedAdmin(ctx context.Context, email, password string) error
	Close() error
}

func openStore(ctx context.Context, cfg *config.Config) (sqlStore, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		st := store.NewPostgresStore(pool)
		if err := st.Migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
		return st, nil
	default:
		st, err := store.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}
		return st, nil
	}
}

func loadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("EXPORT_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func serve(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	loc, err := loadLocation(cfg.ExportTimezone)
	if err != nil {
		return err
	}

	// ── Registrations + admins ───────────────────────────────
	sqlSt, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer sqlSt.Close()
	if cfg.AdminEmail != "" {
		if err := sqlSt.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	} else {
		log.Warn("ADMIN_EMAIL not set; admin login uses previously seeded credentials only")
	}

	// ── Sessions ─────────────────────────────────────────────
	var sessions auth.Sessions
	if cfg.RedisAddr != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		sessions = auth.NewSessionStore(rdb, cfg.SessionTTL)
	} else {
		log.Warn("REDIS_ADDR not set; admin sessions are kept in memory")
		sessions = auth.NewMemorySessionsWithTTL(cfg.SessionTTL)
	}

	m := metrics.New()
	regSvc := registration.NewService(sqlSt,
		registration.WithCacheTTL(cfg.CacheTTL),
		registration.WithMetrics(m),
		registration.WithLogger(log),
	)
	gate := auth.NewGate(sqlSt, sessions, m, log)

	deps := server.Deps{
		Gate:          gate,
		Auth:          auth.NewHandler(gate, cfg.SecureCookie),
		Registrations: registration.NewHandler(regSvc, loc, log),
		Lookup:        lookup.NewHandler(regSvc, m, log),
		Metrics:       m,
		CORSOrigins:   cfg.CORSOrigins,
		RequestLog:    true,
	}

	// ── Content + gallery ────────────────────────────────────
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return fmt.Errorf("mongo connect: %w", err)
		}
		defer mongoClient.Disconnect(context.Background())
		mongoSt := store.NewMongoStore(mongoClient.Database(cfg.MongoDB))
		deps.Content = content.NewHandler(content.NewService(mongoSt, log), log)

		if cfg.GalleryEnabled() {
			minioSt, err := store.NewMinioStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
				cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
			if err != nil {
				return err
			}
			deps.Gallery = gallery.NewHandler(gallery.NewService(mongoSt, minioSt, cfg.GalleryMaxBytes, log), log)
		} else {
			log.Warn("MINIO_ENDPOINT not set; gallery routes disabled")
		}
	} else {
		log.Warn("MONGO_URI not set; content and gallery routes disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("backend listening", "addr", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

func export(ctx context.Context, configPath string, w io.Writer, q string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	loc, err := loadLocation(cfg.ExportTimezone)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	regs, err := st.ListRegistrations(ctx)
	if err != nil {
		return fmt.Errorf("list registrations: %w", err)
	}
	return query.WriteCSV(w, query.Filter(regs, q), loc)
}

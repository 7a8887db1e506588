package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/shareeghor/app/internal/config"
	domkv "example.com/shareeghor/app/internal/domain/kv"
	domproduct "example.com/shareeghor/app/internal/domain/product"
	"example.com/shareeghor/app/internal/infra/catalog"
	"example.com/shareeghor/app/internal/infra/events/rabbitmq"
	"example.com/shareeghor/app/internal/infra/logger"
	"example.com/shareeghor/app/internal/infra/metrics"
	smtpnotify "example.com/shareeghor/app/internal/infra/notify/smtp"
	"example.com/shareeghor/app/internal/infra/persistence/memory"
	"example.com/shareeghor/app/internal/infra/persistence/mysql"
	"example.com/shareeghor/app/internal/infra/persistence/postgres"
	"example.com/shareeghor/app/internal/infra/persistence/redis"
	"example.com/shareeghor/app/internal/infra/security"
	httpapi "example.com/shareeghor/app/internal/interface/http"
	cartuc "example.com/shareeghor/app/internal/usecase/cart"
	checkoutuc "example.com/shareeghor/app/internal/usecase/checkout"
	productuc "example.com/shareeghor/app/internal/usecase/product"
	sessionuc "example.com/shareeghor/app/internal/usecase/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "shareeghor",
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Format:  cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "server.exit", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()
	log.Info(log.WithField(ctx, "driver", cfg.Storage.Driver), "storage.ready")

	products, closeCatalog, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCatalog()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	checkoutOpts := []checkoutuc.Option{
		checkoutuc.WithLogger(log),
		checkoutuc.WithMetrics(m),
	}
	if cfg.RabbitMQ.Enabled() {
		publisher, err := rabbitmq.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			return err
		}
		defer publisher.Close()
		checkoutOpts = append(checkoutOpts, checkoutuc.WithPublisher(publisher))
		log.Info(log.WithField(ctx, "queue", cfg.RabbitMQ.Queue), "events.rabbitmq_ready")
	}
	if cfg.SMTP.Enabled() {
		mailer := smtpnotify.NewMailer(cfg.SMTP.Addr, cfg.SMTP.From,
			smtpnotify.WithPlainAuth(cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host()))
		checkoutOpts = append(checkoutOpts, checkoutuc.WithMailer(mailer))
	}

	cartSvc := cartuc.NewService(store.kv, products, cartuc.WithLogger(log), cartuc.WithMetrics(m))
	api := httpapi.NewAPI(httpapi.Dependencies{
		ProductService:  productuc.NewService(products),
		CartService:     cartSvc,
		CheckoutService: checkoutuc.NewService(cartSvc, store.kv, checkoutOpts...),
		SessionService:  sessionuc.NewService(security.NewJWTService(cfg.Session.Secret, cfg.Session.TTL)),
		Logger:          log,
		RequestMetrics:  m,
		MetricsHandler:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		StorageCheck:    store.ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(log.WithField(ctx, "addr", srv.Addr), "server.listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(ctx, "server.shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openCatalog(ctx context.Context, cfg *config.Config) (domproduct.Repository, func(), error) {
	static, err := catalog.NewStatic()
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	if cfg.Catalog.Driver != config.CatalogMySQL {
		return static, func() {}, nil
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql open: %w", err)
	}
	repo := mysql.NewProductRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("catalog schema: %w", err)
	}
	if err := repo.Seed(ctx, static); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("catalog seed: %w", err)
	}
	return repo, func() { _ = db.Close() }, nil
}

type storage struct {
	kv    domkv.Store
	ping  func(ctx context.Context) error
	close func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		st, err := redis.NewKVStore(ctx, cfg.Redis.URL, cfg.Redis.TTL)
		if err != nil {
			return nil, err
		}
		return &storage{kv: st, ping: st.Ping, close: func() { _ = st.Close() }}, nil

	case config.StorageMySQL:
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			return nil, fmt.Errorf("mysql open: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("mysql ping: %w", err)
		}
		repo := mysql.NewKVRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("mysql schema: %w", err)
		}
		return &storage{kv: repo, ping: db.PingContext, close: func() { _ = db.Close() }}, nil

	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("pg connect: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("pg ping: %w", err)
		}
		repo := postgres.NewKVRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("pg schema: %w", err)
		}
		return &storage{kv: repo, ping: pool.Ping, close: pool.Close}, nil

	default:
		st := memory.NewKVStore()
		return &storage{kv: st, ping: func(context.Context) error { return nil }, close: func() {}}, nil
	}
}

// Package pg provides connection helpers for the pgx/v5 driver used by the
// PostgreSQL session store.
//
// Connect opens a retrying *pgxpool.Pool from environment-driven Config,
// Migrate applies the goose migrations shipped in this module's migrations
// directory (including the sessions table schema), and Healthcheck exposes
// a readiness probe. Session persistence itself lives in the session
// package (session.NewPGStore).
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    log.Fatal(err)
//	}
//	store := session.NewPGStore(pool)
package pg

// Package pg connects to PostgreSQL with pgx/v5 and keeps the payload state
// schema up to date with goose/v3.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		return err
//	}
//
// The migrations are embedded in the binary; Config.MigrationsTable names
// the goose version table.
package pg

// Package mongo provides connection helpers for the official MongoDB driver
// used by the MongoDB session store.
//
// New opens a retrying *mongo.Client from environment-driven Config,
// NewWithDatabase additionally selects a database, and Healthcheck exposes
// a readiness probe. Session persistence itself lives in the session
// package (session.NewMongoStore).
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "app")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := session.NewMongoStore(db)
package mongo

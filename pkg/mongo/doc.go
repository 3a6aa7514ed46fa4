// Package mongo opens MongoDB clients for the mongo state backend.
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(context.Background())
//
//	coll := client.Database(cfg.Database).Collection(cfg.Collection)
//
// Connection attempts are retried RetryAttempts times with RetryInterval
// between them.
package mongo

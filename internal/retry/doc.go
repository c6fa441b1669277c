// Package retry retries database operations that fail for transient reasons.
//
// appgen uses it around connection checks before applying a schema: a
// database that is still starting up refuses connections for a short while,
// and a container-based test database is the common case.
//
//	executor := retry.NewExecutor(retry.NewDatabaseErrorClassifier(), retry.DefaultBackoff())
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return db.PingContext(ctx)
//	})
package retry

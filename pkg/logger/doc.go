// Package logger builds the slog loggers used by the dispatch runtime.
//
// New returns a *slog.Logger configured with functional options: output
// format (JSON or text), minimum level, static attributes and context
// extractors. Extractors run on every record and copy values out of the
// context, which is how each dispatch gets its dispatch_id attached:
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithContextExtractors(logger.DispatchExtractor),
//	)
//	ctx = logger.WithDispatchID(ctx, id)
//	log.InfoContext(ctx, "payload created", logger.Route("reports/daily"), logger.Payload("Daily"))
//
// The attribute helpers in attr.go keep key names consistent across
// packages. Error and Errors return an empty Attr for nil errors so they can
// be passed unconditionally.
package logger

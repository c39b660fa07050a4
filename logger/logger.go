package logger

import (
	"go.uber.org/zap"
)

var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Init builds the production logger at level ("debug", "info", ...).
func Init(level string) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			panic("invalid log level " + level + ": " + err.Error())
		}
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}

// InitNop discards everything. Tests use it.
func InitNop() {
	Log = zap.NewNop().Sugar()
}

// Sync flushes buffered entries.
func Sync() {
	_ = Log.Sync()
}

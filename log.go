package krypto

import "go.uber.org/zap"

// log is the package-wide logger. Disabled by default: the module emits no
// output until a caller opts in with UseLogger, matching the library
// logging convention of not assuming ownership of a host application's
// log sink.
var log *zap.SugaredLogger = zap.NewNop().Sugar()

// UseLogger directs krypto's construction-time diagnostics and recoverable
// padding warnings to the given logger. The per-block hot path never logs
// regardless of the logger installed here.
func UseLogger(logger *zap.Logger) {
	log = logger.Sugar()
}

// DisableLog silences all krypto log output. This is also the default.
func DisableLog() {
	log = zap.NewNop().Sugar()
}

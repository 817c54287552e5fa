package util

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogScene | LogMarker | LogIO | LogSystem

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

type LogCategory int

const (
	LogVoxel LogCategory = 1 << iota
	LogScene
	LogPrediction
	LogMarker
	LogIO
	LogSystem
	LogInput
)

const LogAllCategories = LogVoxel | LogScene | LogPrediction | LogMarker | LogIO | LogSystem | LogInput

func (c LogCategory) String() string {
	switch c {
	case LogVoxel:
		return "voxel"
	case LogScene:
		return "scene"
	case LogPrediction:
		return "prediction"
	case LogMarker:
		return "marker"
	case LogIO:
		return "io"
	case LogSystem:
		return "system"
	case LogInput:
		return "input"
	}
	return "unknown"
}

// LookupLogLevel resolves the names used in config files and flags.
func LookupLogLevel(name string) (LogLevel, bool) {
	switch name {
	case "error":
		return LogLevelError, true
	case "warn", "warning":
		return LogLevelWarning, true
	case "info":
		return LogLevelInfo, true
	case "debug":
		return LogLevelDebug, true
	}
	return LogLevelInfo, false
}

// ParseLogLevel maps unknown names to info.
func ParseLogLevel(name string) LogLevel {
	level, _ := LookupLogLevel(name)
	return level
}

var (
	loggerMu  sync.RWMutex
	zapLogger = newDefaultLogger()
)

func newDefaultLogger() *zap.Logger {
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// SetLogger replaces the sink of all Log* functions. Filtering by level and
// category still happens here, so the given logger should accept debug.
func SetLogger(logger *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = zap.NewNop()
	}
	zapLogger = logger
}

func SetLogLevel(level LogLevel) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	GLOBAL_LOG_LEVEL = level
}

func SetLogCategories(categories LogCategory) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	GLOBAL_LOG_CATEGORIES = categories
}

func SyncLog() {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	_ = zapLogger.Sync()
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	zapLogger.Log(toZapLevel(lvl), txt, zap.Stringer("category", cat))
}

func toZapLevel(lvl LogLevel) zapcore.Level {
	switch lvl {
	case LogLevelError:
		return zap.ErrorLevel
	case LogLevelWarning:
		return zap.WarnLevel
	case LogLevelDebug:
		return zap.DebugLevel
	}
	return zap.InfoLevel
}

func LogVoxelDebug(txt string) {
	log(LogVoxel, LogLevelDebug, txt)
}

func LogSceneInfo(txt string) {
	log(LogScene, LogLevelInfo, txt)
}

func LogSceneDebug(txt string) {
	log(LogScene, LogLevelDebug, txt)
}

func LogSceneWarning(txt string) {
	log(LogScene, LogLevelWarning, txt)
}

func LogPredictionDebug(txt string) {
	log(LogPrediction, LogLevelDebug, txt)
}

func LogMarkerInfo(txt string) {
	log(LogMarker, LogLevelInfo, txt)
}

func LogMarkerError(txt string) {
	log(LogMarker, LogLevelError, txt)
}

func LogSystemInfo(txt string) {
	log(LogSystem, LogLevelInfo, txt)
}

func LogSystemError(txt string) {
	log(LogSystem, LogLevelError, txt)
}

func LogIOInfo(txt string) {
	log(LogIO, LogLevelInfo, txt)
}

func LogInputDebug(txt string) {
	log(LogInput, LogLevelDebug, txt)
}

package util

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogParticles | LogOpenGL | LogSystem | LogIO

var logger = zap.NewNop()

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

type LogCategory int

const (
	LogParticles LogCategory = 1 << iota
	LogSystem
	LogOpenGL
	LogIO
)

func (c LogCategory) String() string {
	switch c {
	case LogParticles:
		return "particles"
	case LogSystem:
		return "system"
	case LogOpenGL:
		return "opengl"
	case LogIO:
		return "io"
	}
	return "unknown"
}

// SetLogger replaces the zap logger behind the category helpers. Passing nil silences logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the zap logger behind the category helpers.
func Logger() *zap.Logger {
	return logger
}

// NewLogger builds a console or json logger. Unknown levels fall back to info.
func NewLogger(level, format string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel)

	return zapCfg.Build()
}

// LevelFromString maps a zap level name onto the category filter level.
func LevelFromString(level string) LogLevel {
	switch level {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarning
	case "error":
		return LogLevelError
	}
	return LogLevelInfo
}

func log(cat LogCategory, lvl LogLevel, txt string, fields []zap.Field) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	fields = append(fields, zap.Stringer("category", cat))
	switch lvl {
	case LogLevelError:
		logger.Error(txt, fields...)
	case LogLevelWarning:
		logger.Warn(txt, fields...)
	case LogLevelInfo:
		logger.Info(txt, fields...)
	default:
		logger.Debug(txt, fields...)
	}
}

func LogParticlesInfo(txt string, fields ...zap.Field) {
	log(LogParticles, LogLevelInfo, txt, fields)
}

func LogParticlesDebug(txt string, fields ...zap.Field) {
	log(LogParticles, LogLevelDebug, txt, fields)
}

func LogParticlesWarning(txt string, fields ...zap.Field) {
	log(LogParticles, LogLevelWarning, txt, fields)
}

func LogParticlesError(txt string, fields ...zap.Field) {
	log(LogParticles, LogLevelError, txt, fields)
}

func LogSystemInfo(txt string, fields ...zap.Field) {
	log(LogSystem, LogLevelInfo, txt, fields)
}

func LogSystemError(txt string, fields ...zap.Field) {
	log(LogSystem, LogLevelError, txt, fields)
}

func LogIOError(txt string, fields ...zap.Field) {
	log(LogIO, LogLevelError, txt, fields)
}

func LogGlInfo(txt string, fields ...zap.Field) {
	log(LogOpenGL, LogLevelInfo, txt, fields)
}

func LogGlDebug(txt string, fields ...zap.Field) {
	log(LogOpenGL, LogLevelDebug, txt, fields)
}

func LogGlError(txt string, fields ...zap.Field) {
	log(LogOpenGL, LogLevelError, txt, fields)
}

func LogGlWarning(txt string, fields ...zap.Field) {
	log(LogOpenGL, LogLevelWarning, txt, fields)
}

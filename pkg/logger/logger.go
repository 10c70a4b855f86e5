package logger

import (
	"io"
	"os"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzap "github.com/hertz-contrib/logger/zap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"SiteOK/config"
)

var (
	// Logger 默认是 Nop，未调用 Init 的场景（单测）不会空指针
	Logger  = zap.NewNop()
	closers []io.Closer
)

// Init 把 zap 同时挂到 hlog 和包级 Logger 上：
// 业务代码用 Logger 打结构化字段，框架日志走 hlog
func Init() {
	level := parseLevel(config.Cfg.LoggerLevel)

	hz := hertzzap.NewLogger(
		hertzzap.WithCoreEnc(newEncoder()),
		hertzzap.WithCoreWs(newSink()),
		hertzzap.WithCoreLevel(zap.NewAtomicLevelAt(level)),
		hertzzap.WithZapOptions(
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		),
	)
	hlog.SetLogger(hz)
	hlog.SetLevel(hlogLevel(level))

	Logger = hz.Logger()
	Logger.Info("Logger initialized",
		zap.String("level", level.String()),
		zap.String("format", config.Cfg.LoggerFormat),
		zap.String("environment", config.Cfg.Environment),
	)
}

func Sync() {
	_ = Logger.Sync()
	for _, c := range closers {
		_ = c.Close()
	}
}

func newEncoder() zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder

	if config.Cfg.IsDevelopment() || strings.EqualFold(config.Cfg.LoggerFormat, "text") {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}

	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(ec)
}

func newSink() zapcore.WriteSyncer {
	path := config.Cfg.LoggerOutputPath
	if path == "" || strings.EqualFold(path, "stdout") {
		return zapcore.AddSync(os.Stdout)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		panic("logger: open " + path + ": " + err.Error())
	}
	closers = append(closers, f)

	return zapcore.AddSync(f)
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func hlogLevel(l zapcore.Level) hlog.Level {
	switch l {
	case zapcore.DebugLevel:
		return hlog.LevelDebug
	case zapcore.WarnLevel:
		return hlog.LevelWarn
	case zapcore.ErrorLevel:
		return hlog.LevelError
	default:
		return hlog.LevelInfo
	}
}

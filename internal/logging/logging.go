// Package logging builds the zap logger used by the command line tool.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing to w. Verbose enables debug output; asJSON
// switches from the console encoder to the production JSON encoder.
// Errors and above carry the caller.
func New(w io.Writer, verbose, asJSON bool) *zap.Logger {
	var base zapcore.EncoderConfig
	if asJSON {
		base = zap.NewProductionEncoderConfig()
	} else {
		base = zap.NewDevelopmentEncoderConfig()
		base.EncodeCaller = zapcore.ShortCallerEncoder
	}
	base.TimeKey = "timestamp"
	base.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	base.EncodeLevel = zapcore.CapitalLevelEncoder

	noCaller := base
	noCaller.CallerKey = ""
	withCaller := base
	withCaller.CallerKey = "caller"

	newEncoder := zapcore.NewConsoleEncoder
	if asJSON {
		newEncoder = zapcore.NewJSONEncoder
	}

	minLevel := zapcore.InfoLevel
	if verbose {
		minLevel = zapcore.DebugLevel
	}

	ws := zapcore.Lock(zapcore.AddSync(w))

	core := zapcore.NewTee(
		zapcore.NewCore(newEncoder(noCaller), ws, zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= minLevel && lvl < zapcore.ErrorLevel
		})),
		zapcore.NewCore(newEncoder(withCaller), ws, zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		})),
	)

	return zap.New(core, zap.AddCaller())
}

package logsvc

import (
	"fmt"
	"net/http"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"

	"github.com/tundavala/escola/core"
)

// RollbarLogger writes entries locally through zap and reports them to rollbar.
type RollbarLogger struct {
	std *zap.SugaredLogger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *zap.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std.Sugar()}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Sync flushes the local log and waits for pending rollbar items.
func (l RollbarLogger) Sync() {
	_ = l.std.Sync()
	rollbar.Wait()
}

// expected fmt: msg | error, *http.Request, map[string]interface{}
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	return append(newArgs, args...)
}

// fields turns args into zap key-value pairs.
func (l RollbarLogger) fields(args []interface{}) []interface{} {
	kvs := make([]interface{}, 0, len(args)*2)
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			kvs = append(kvs, "error", fmt.Sprintf("%+v", a))
		case *http.Request:
			kvs = append(kvs, "method", a.Method, "path", a.URL.Path)
		case map[string]interface{}:
			for k, v := range a {
				kvs = append(kvs, k, v)
			}
		default:
			kvs = append(kvs, "extra", a)
		}
	}
	return kvs
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.std.Debugw(msg, l.fields(args)...)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.std.Infow(msg, l.fields(args)...)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.std.Warnw(msg, l.fields(args)...)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.std.Errorw(msg, l.fields(args)...)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	rollbar.Wait()
	l.std.Fatalw(msg, l.fields(args)...)
}

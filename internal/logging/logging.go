// Package logging configures logrus and provides the gin request logger.
package logging

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Request scope keys.
const (
	ScopeReqID   = "reqId"
	HeaderReqID  = "X-Request-Id"
	FormatText   = "text"
	FormatJSON   = "json"
	defaultLevel = log.InfoLevel
)

// Setup configures the standard logrus logger.
func Setup(out io.Writer, level, format string) error {
	lvl := defaultLevel
	if level != "" {
		l, err := log.ParseLevel(level)
		if err != nil {
			return errors.Wrapf(err, "log level %q", level)
		}
		lvl = l
	}
	log.SetLevel(lvl)
	if out != nil {
		log.SetOutput(out)
	}
	switch format {
	case FormatJSON:
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	case FormatText, "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return errors.Errorf("unknown log format %q", format)
	}
	return nil
}

// RequestID tags each request with an id, reusing an incoming X-Request-Id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderReqID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ScopeReqID, id)
		c.Header(HeaderReqID, id)
		c.Next()
	}
}

// Logger logs one line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logCtx := FromContext(c).WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if len(c.Errors) > 0 {
			logCtx.WithError(c.Errors.Last()).Warn("Request completed with errors.")
			return
		}
		logCtx.Info("Request completed.")
	}
}

// FromContext returns a log entry carrying the request id.
func FromContext(c *gin.Context) *log.Entry {
	return log.WithFields(log.Fields{"reqId": c.GetString(ScopeReqID)})
}

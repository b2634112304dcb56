// Package utils provides utility functions to support various operations within the application.
package utils

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// GenerateTraceId returns a fresh identifier that correlates all log lines of one request.
func GenerateTraceId() string {
	return uuid.New().String()
}

// ExtractServiceName derives the service label attached to every log entry.
func ExtractServiceName() string {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "fittrack-server"
	}
	return service
}

func logEntry(entry *log.Entry, level, message string) {
	switch level {
	case "debug":
		entry.Debug(message)
	case "info":
		entry.Info(message)
	case "warn":
		entry.Warn(message)
	case "error":
		entry.Error(message)
	case "fatal":
		entry.Fatal(message)
	default:
		entry.Info(message)
	}
}

// LogMessage logs a message with the service field only.
func LogMessage(level, message string) {
	entry := log.WithFields(log.Fields{
		"service": ExtractServiceName(),
	})

	logEntry(entry, level, message)
}

// LogMessageWithFields logs a message enriched with the request's trace ID.
func LogMessageWithFields(c *gin.Context, level, message string) {
	entry := log.WithFields(log.Fields{
		"traceId": c.GetString(TraceIdKey),
		"service": ExtractServiceName(),
	})

	logEntry(entry, level, message)
}

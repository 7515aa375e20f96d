package service

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/notifeed/notification-service/internal/core/service")

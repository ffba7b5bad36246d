package controller

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/viewmarks/extension/internal/controller"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

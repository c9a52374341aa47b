package telemetry

import "go.opentelemetry.io/otel/attribute"

// Attribute keys attached to validation metrics.
const (
	AttrEnvironment = attribute.Key("environment")
	AttrFieldName   = attribute.Key("field.name")
	AttrFieldKind   = attribute.Key("field.kind")
	AttrResult      = attribute.Key("result")
	AttrErrorCode   = attribute.Key("error.code")
)

// Result values.
const (
	ResultValid    = "valid"
	ResultRejected = "rejected"
	ResultSkipped  = "skipped"
)

// FieldAttributes returns the attributes shared by every field metric.
func FieldAttributes(environment, field, kind string) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrEnvironment.String(environment),
		AttrFieldName.String(field),
		AttrFieldKind.String(kind),
	}
}

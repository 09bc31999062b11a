package events

import "reflect"

// Event is the interface that all hand history events must implement.
type Event interface {
	EventName() string // Returns a unique name for the event type
}

// GetHandID extracts the HandID field from an event, or "" if it has none.
func GetHandID(event Event) string {
	val := reflect.ValueOf(event)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	field := val.FieldByName("HandID")
	if field.IsValid() && field.Kind() == reflect.String {
		return field.String()
	}
	return ""
}

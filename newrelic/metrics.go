package newrelic

import (
	"errors"
	"os"
)

// SendCustomEvent sends custom event to newrelic
func SendCustomEvent(eventName string, event map[string]interface{}) error {
	if App == nil {
		return nil
	}
	hostName, err := os.Hostname()
	if err != nil {
		return errors.New("Failed sending the event. Hostname not found")
	}
	event["host"] = hostName
	App.RecordCustomEvent(eventName, event)
	return nil
}

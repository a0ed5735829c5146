package newrelic

import (
	"github.com/newrelic/go-agent/v3/newrelic"
)

// App contains the newrelic application
var App *newrelic.Application

// InitNewRelicApp initializes the New Relic app. Without a license key the
// agent is created disabled so the middleware and events stay no-ops.
func InitNewRelicApp(appName, license string) error {
	var err error
	App, err = newrelic.NewApplication(
		newrelic.ConfigAppName(appName),
		newrelic.ConfigLicense(license),
		newrelic.ConfigEnabled(license != ""),
	)
	if err != nil {
		return err
	}
	return nil
}

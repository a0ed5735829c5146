package main

import (
	"fmt"
	"log"
	"os"

	"bitbucket.org/yellowmessenger/elevenlabs-bridge/configmanager"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/core/registercall"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/elevenlabs"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/metrics"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/newrelic"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/phonenumber"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/queuemanager"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/requesthandler"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/ymlogger"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v3"
	echopprof "github.com/sevenNt/echo-pprof"
)

var host = "0.0.0.0"

func main() {
	configFile := "config.json"
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}
	// Initilize the config
	conf, err := configmanager.Load(configFile)
	if err != nil {
		log.Fatalf("Error while initializing the config. Error: [%#v]", err)
	}
	if err := conf.Validate(); err != nil {
		log.Fatalf("Invalid configuration. Error: [%s]", err.Error())
	}

	// Initiliaze YM logger
	if err := ymlogger.InitYMLogger(conf.LoggerConf); err != nil {
		log.Fatalf("Failed to initialize the logger. Err: [%#v]", err)
	}

	// Initialize new relic app
	if err := newrelic.InitNewRelicApp(conf.NewRelicAppName, conf.NewRelicLicenseKey); err != nil {
		log.Fatalf("Error while initializing new relic app. Error: [%#v]", err)
	}

	// Initialize Metrics client
	if err := metrics.InitClient(conf.MetricsConf); err != nil {
		log.Fatalf("Failed to initialize metrics client. Error: [%s]", err.Error())
	}

	registrar, err := newRegistrar(conf)
	if err != nil {
		log.Fatalf("Failed to initialize the registrar. Error: [%s]", err.Error())
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(nrecho.Middleware(newrelic.App))
	e.Use(middleware.Secure())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1024KB"))
	e.Use(middleware.RemoveTrailingSlash())
	e.Use(middleware.LoggerWithConfig(middleware.DefaultLoggerConfig))

	AddRoutes(e, requesthandler.RegisterCallHandler{
		SecretKey: conf.SecretKey,
		Registrar: registrar,
	})

	if conf.EnablePprof {
		echopprof.Wrap(e)
	}

	ymlogger.LogInfof("HTTPHandler", "ElevenLabs Bridge listening for requests on port %s", conf.Port)
	ymlogger.LogInfof("HTTPHandler", "Ready to place outbound calls for agent %s", conf.ElevenLabsAgentID)
	if err := e.Start(fmt.Sprintf("%s:%s", host, conf.Port)); err != nil {
		ymlogger.LogCritical("HTTPHandler", "Failed to start server! ", err)
		if publisher, ok := registrar.Publisher.(*queuemanager.Publisher); ok {
			publisher.Close()
		}
		os.Exit(1)
	}
}

func newRegistrar(conf *configmanager.AppConfig) (*registercall.Registrar, error) {
	registrar := &registercall.Registrar{
		Credentials: conf.Credentials(),
		Caller:      elevenlabs.NewClient(conf.ElevenLabsBaseURL, conf.ElevenLabsAPIKey, conf.UpstreamTimeout()),
	}
	if conf.NormalizeNumbers {
		registrar.Numbers = &phonenumber.Normalizer{DefaultRegion: conf.DefaultRegion}
	}
	if conf.QueueConnParams.Enabled() {
		ymlogger.LogInfo("InitRabbitMQConn", "Initializing RabbitMQ call event publisher")
		publisher, err := queuemanager.NewPublisher(conf.QueueConnParams, conf.QueueMessageParams)
		if err != nil {
			return nil, err
		}
		registrar.Publisher = publisher
	}
	return registrar, nil
}

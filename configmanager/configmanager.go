package configmanager

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/yellowmessenger/elevenlabs-bridge/elevenlabs"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/metrics"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/queuemanager"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/ymlogger"
)

const (
	defaultPort              = "3000"
	defaultUpstreamTimeoutMS = 30000
	defaultNewRelicAppName   = "ElevenLabs Bridge"
)

// AppConfig is read once at startup and never mutated afterwards
type AppConfig struct {
	LoggerConf           ymlogger.LoggerConf             `json:"logger_conf"`
	MetricsConf          metrics.Config                  `json:"metrics_conf"`
	QueueConnParams      queuemanager.QueueConnParams    `json:"queue_conn_params"`
	QueueMessageParams   queuemanager.QueueMessageParams `json:"queue_message_params"`
	Port                 string                          `json:"port"`
	SecretKey            string                          `json:"secret_key"`
	ElevenLabsAPIKey     string                          `json:"elevenlabs_api_key"`
	ElevenLabsAgentID    string                          `json:"elevenlabs_agent_id"`
	ElevenLabsPhoneNumID string                          `json:"elevenlabs_phone_number_id"`
	ElevenLabsBaseURL    string                          `json:"elevenlabs_base_url"`
	UpstreamTimeoutMS    int                             `json:"upstream_timeout_ms"`
	NormalizeNumbers     bool                            `json:"normalize_numbers"`
	DefaultRegion        string                          `json:"default_region"`
	NewRelicAppName      string                          `json:"new_relic_app_name"`
	NewRelicLicenseKey   string                          `json:"new_relic_license_key"`
	EnablePprof          bool                            `json:"enable_pprof"`
}

// LookupEnv matches os.LookupEnv
type LookupEnv func(key string) (string, bool)

// Load reads the optional JSON config file and applies the environment on top.
func Load(fileName string) (*AppConfig, error) {
	return load(fileName, os.LookupEnv)
}

func load(fileName string, lookup LookupEnv) (*AppConfig, error) {
	conf := &AppConfig{
		Port:              defaultPort,
		ElevenLabsBaseURL: elevenlabs.DefaultBaseURL,
		UpstreamTimeoutMS: defaultUpstreamTimeoutMS,
		NewRelicAppName:   defaultNewRelicAppName,
		LoggerConf: ymlogger.LoggerConf{
			ProcessName: "elevenlabs-bridge",
			LogSeverity: "INFO",
			ConsoleLog:  true,
		},
	}
	if fileName != "" {
		data, err := ioutil.ReadFile(fileName)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, err
		default:
			if err = json.Unmarshal(data, conf); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", fileName, err)
			}
		}
	}
	if err := conf.applyEnv(lookup); err != nil {
		return nil, err
	}
	return conf, nil
}

func (conf *AppConfig) applyEnv(lookup LookupEnv) error {
	strs := map[string]*string{
		"PORT":                       &conf.Port,
		"SECRET_KEY":                 &conf.SecretKey,
		"ELEVENLABS_API_KEY":         &conf.ElevenLabsAPIKey,
		"ELEVENLABS_AGENT_ID":        &conf.ElevenLabsAgentID,
		"ELEVENLABS_PHONE_NUMBER_ID": &conf.ElevenLabsPhoneNumID,
		"ELEVENLABS_BASE_URL":        &conf.ElevenLabsBaseURL,
		"DEFAULT_REGION":             &conf.DefaultRegion,
		"NEW_RELIC_LICENSE_KEY":      &conf.NewRelicLicenseKey,
		"LOG_SEVERITY":               &conf.LoggerConf.LogSeverity,
	}
	for key, dst := range strs {
		if value, ok := lookup(key); ok && value != "" {
			*dst = value
		}
	}
	if value, ok := lookup("UPSTREAM_TIMEOUT_MS"); ok && value != "" {
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("UPSTREAM_TIMEOUT_MS must be an integer: %w", err)
		}
		conf.UpstreamTimeoutMS = ms
	}
	bools := map[string]*bool{
		"NORMALIZE_NUMBERS": &conf.NormalizeNumbers,
		"ENABLE_PPROF":      &conf.EnablePprof,
	}
	for key, dst := range bools {
		if value, ok := lookup(key); ok && value != "" {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s must be a boolean: %w", key, err)
			}
			*dst = b
		}
	}
	return nil
}

// Validate reports every setting the bridge cannot start without
func (conf *AppConfig) Validate() error {
	var missing []string
	if conf.SecretKey == "" {
		missing = append(missing, "SECRET_KEY")
	}
	if conf.ElevenLabsAPIKey == "" {
		missing = append(missing, "ELEVENLABS_API_KEY")
	}
	if conf.ElevenLabsAgentID == "" {
		missing = append(missing, "ELEVENLABS_AGENT_ID")
	}
	if conf.ElevenLabsPhoneNumID == "" {
		missing = append(missing, "ELEVENLABS_PHONE_NUMBER_ID")
	}
	if len(missing) > 0 {
		return errors.New("missing configuration: " + strings.Join(missing, ", "))
	}
	if conf.UpstreamTimeoutMS <= 0 {
		return errors.New("upstream_timeout_ms must be positive")
	}
	return nil
}

// UpstreamTimeout is the deadline for one ElevenLabs call
func (conf *AppConfig) UpstreamTimeout() time.Duration {
	return time.Duration(conf.UpstreamTimeoutMS) * time.Millisecond
}

// Credentials returns the identifiers stamped on every upstream payload
func (conf *AppConfig) Credentials() elevenlabs.Credentials {
	return elevenlabs.Credentials{
		AgentID:       conf.ElevenLabsAgentID,
		PhoneNumberID: conf.ElevenLabsPhoneNumID,
	}
}

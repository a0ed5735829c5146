package metrics

import (
	"encoding/json"
	"errors"
	"net"
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	clientMu sync.RWMutex
	client   *Client
)

// Client holds the info about the UDP metrics collector
type Client struct {
	Service string
	Host    string
	Port    string
}

// Config contains the configuration for the metrics
type Config struct {
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Service string `json:"service"`
}

type metricDump struct {
	Name      string                 `json:"name"`
	Filters   map[string]string      `json:"filters"`
	Fields    map[string]interface{} `json:"fields"`
	TimeStamp int64                  `json:"timestamp"`
}

// Metric contains the metric to be sent
type Metric struct {
	metricDump
	sync.Mutex
}

// AddFilter add the filter to the metric
func (m *Metric) AddFilter(key, value string) error {
	if len(key) <= 0 || len(value) <= 0 {
		return errors.New("Key/value can't be empty")
	}
	m.Lock()
	m.Filters[key] = value
	m.Unlock()
	return nil
}

// AddField adds the field to the metric
func (m *Metric) AddField(key string, value interface{}) error {
	if len(key) <= 0 {
		return errors.New("Field name can't be empty")
	}
	m.Lock()
	m.Fields[key] = value
	m.Unlock()
	return nil
}

// Serialize marshals the metric
func (m *Metric) Serialize() ([]byte, error) {
	m.Lock()
	defer m.Unlock()
	return json.Marshal(m.metricDump)
}

// Enabled reports whether a collector has been configured
func Enabled() bool {
	clientMu.RLock()
	defer clientMu.RUnlock()
	return client != nil
}

// InitClient initializes the client. An empty host leaves metrics disabled.
func InitClient(config Config) error {
	clientMu.Lock()
	defer clientMu.Unlock()
	client = nil
	if len(config.Host) <= 0 {
		return nil
	}
	if config.Port <= 0 {
		return errors.New("Failed initializing the metric client. Port is empty")
	}
	if len(config.Service) <= 0 {
		return errors.New("Failed initializing the metric client. Service is empty")
	}
	client = &Client{
		Host:    config.Host,
		Port:    strconv.Itoa(config.Port),
		Service: config.Service,
	}
	return nil
}

// NewMetric is used to create new metric object
func NewMetric(name string, filters map[string]string, fields map[string]interface{}) (*Metric, error) {
	metric := new(Metric)
	metric.Name = name
	metric.Filters = make(map[string]string)
	metric.Fields = make(map[string]interface{})
	for key, value := range filters {
		if err := metric.AddFilter(key, value); err != nil {
			return metric, err
		}
	}
	for key, value := range fields {
		if err := metric.AddField(key, value); err != nil {
			return metric, err
		}
	}
	metric.TimeStamp = time.Now().Unix()
	return metric, nil
}

// SendMetric sends the metric. It is a no-op while metrics are disabled.
func SendMetric(metric *Metric) error {
	clientMu.RLock()
	c := client
	clientMu.RUnlock()
	if c == nil {
		return nil
	}
	hostName, err := os.Hostname()
	if err != nil {
		return errors.New("Failed sending the metric. Hostname not found")
	}
	metric.AddFilter("host", hostName)
	metric.AddFilter("service", c.Service)
	msg, err := metric.Serialize()
	if err != nil {
		return errors.New("Failed sending the metric. Couldn't serialize the metric")
	}
	conn, err := net.Dial("udp", net.JoinHostPort(c.Host, c.Port))
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Write(msg)
	return err
}

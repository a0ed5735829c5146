package metrics

import (
	"encoding/json"
	"net"
	"testing"
	"time"
)

func TestInitClient(t *testing.T) {
	t.Run("EmptyHostDisables", func(t *testing.T) {
		if err := InitClient(Config{}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if Enabled() {
			t.Errorf("Expected metrics to be disabled")
		}
		metric, _ := NewMetric("call.register", nil, nil)
		if err := SendMetric(metric); err != nil {
			t.Errorf("Expected disabled send to be a no-op, got %v", err)
		}
	})

	t.Run("MissingService", func(t *testing.T) {
		if err := InitClient(Config{Host: "127.0.0.1", Port: 8125}); err == nil {
			t.Errorf("Expected an error for a missing service")
		}
		if Enabled() {
			t.Errorf("Expected metrics to stay disabled")
		}
	})
}

func TestSendMetric(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer conn.Close()
	port := conn.LocalAddr().(*net.UDPAddr).Port

	if err := InitClient(Config{Host: "127.0.0.1", Port: port, Service: "bridge"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer InitClient(Config{})

	metric, err := NewMetric("call.register", map[string]string{"outcome": "success"}, map[string]interface{}{"count": 1})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := SendMetric(metric); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	buf := make([]byte, 2048)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := conn.ReadFrom(buf)
	if err != nil {
		t.Fatalf("Expected a datagram, got %v", err)
	}
	var dump metricDump
	if err := json.Unmarshal(buf[:n], &dump); err != nil {
		t.Fatalf("metric is not JSON: %v", err)
	}
	if dump.Name != "call.register" || dump.Filters["outcome"] != "success" || dump.Filters["service"] != "bridge" {
		t.Errorf("Unexpected metric %#v", dump)
	}
}

func TestAddFilterRejectsEmpty(t *testing.T) {
	if _, err := NewMetric("m", map[string]string{"mode": ""}, nil); err == nil {
		t.Errorf("Expected an error for an empty filter value")
	}
}

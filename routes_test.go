package main

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"bitbucket.org/yellowmessenger/elevenlabs-bridge/configmanager"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/requesthandler"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/ymlogger"
	"github.com/labstack/echo"
)

func TestRoutes(t *testing.T) {
	ymlogger.SetOutput(ioutil.Discard)

	var hits int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/v1/convai/twilio/outbound-call" || r.Header.Get("xi-api-key") != "xi" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"success":true,"callSid":"CA1"}`))
	}))
	defer upstream.Close()

	conf := &configmanager.AppConfig{
		SecretKey:            "s3cret",
		ElevenLabsAPIKey:     "xi",
		ElevenLabsAgentID:    "agent_1",
		ElevenLabsPhoneNumID: "phnum_1",
		ElevenLabsBaseURL:    upstream.URL,
		UpstreamTimeoutMS:    2000,
	}
	if err := conf.Validate(); err != nil {
		t.Fatal(err)
	}
	registrar, err := newRegistrar(conf)
	if err != nil {
		t.Fatal(err)
	}
	e := echo.New()
	AddRoutes(e, requesthandler.RegisterCallHandler{SecretKey: conf.SecretKey, Registrar: registrar})

	cases := []struct {
		name   string
		method string
		path   string
		auth   string
		body   string
		want   int
	}{
		{"Health", http.MethodGet, "/health", "", "", http.StatusOK},
		{"RegisterCall", http.MethodPost, "/register-call", "Bearer s3cret", `{"to_number":"+15550002222"}`, http.StatusOK},
		{"OutboundAlias", http.MethodPost, "/outbound-call", "Bearer s3cret", `{"to_number":"+15550002222"}`, http.StatusOK},
		{"Unauthorized", http.MethodPost, "/register-call", "", `{"to_number":"+15550002222"}`, http.StatusUnauthorized},
		{"UnknownPath", http.MethodGet, "/calls", "", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			if tc.auth != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Errorf("Expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Errorf("Expected 2 upstream calls, got %d", n)
	}
}

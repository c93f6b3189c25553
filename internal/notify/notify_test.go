package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPClientSend(t *testing.T) {
	var got Mail
	var path, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL+"/", time.Second, quietLogger())
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	mail := Mail{
		Subject:         "Successfully created a theatre",
		RecepientEmails: []string{"owner@example.com"},
		Content:         "You have successfully created a new theatre",
	}
	if err := client.Send(context.Background(), mail); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if path != notificationsPath {
		t.Errorf("path = %q, want %q", path, notificationsPath)
	}
	if contentType != "application/json" {
		t.Errorf("content type = %q", contentType)
	}
	if got.Subject != mail.Subject || len(got.RecepientEmails) != 1 || got.RecepientEmails[0] != "owner@example.com" {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestHTTPClientSendUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, time.Second, quietLogger())
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	if err := client.Send(context.Background(), Mail{Subject: "x"}); err == nil {
		t.Fatal("expected an error for a 502 response")
	}
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewHTTPClient("notiservice", time.Second, nil); err == nil {
		t.Fatal("expected an error for a relative url")
	}
}

func TestMailWireFormat(t *testing.T) {
	b, err := json.Marshal(Mail{Subject: "s", RecepientEmails: []string{"a@x.com"}, Content: "c"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"subject":"s","recepientEmails":["a@x.com"],"content":"c"}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

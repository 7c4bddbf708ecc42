// Package main provides a developer tool that tails the live feed websocket.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	host := flag.String("host", "localhost:8375", "API server host")
	token := flag.String("token", "", "Google credential (ID token or access token)")
	raw := flag.Bool("raw", false, "Print raw frames instead of formatted events")
	flag.Parse()

	if *token == "" {
		log.Fatal("a -token is required (the feed endpoint is authenticated)")
	}

	u := url.URL{
		Scheme:   "ws",
		Host:     *host,
		Path:     "/api/ws/",
		RawQuery: url.Values{"token": {*token}}.Encode(),
	}
	log.Printf("Connecting to %s://%s%s", u.Scheme, u.Host, u.Path)

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer func() { _ = conn.Close() }()
	log.Println("Connected; tailing feed events (Ctrl-C to quit)")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read: %v", err)
				return
			}
			printEvent(message, *raw)
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("Interrupted, closing connection...")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func printEvent(message []byte, raw bool) {
	if raw {
		log.Printf("%s", message)
		return
	}

	var event struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(message, &event); err != nil {
		log.Printf("unparseable frame: %s", message)
		return
	}
	log.Printf("[%s] %s", event.Type, event.Payload)
}

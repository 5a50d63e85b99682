// Package main provides a command line client that tails the live feed
// WebSocket stream, useful for smoke testing a running server.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	host := flag.String("host", "localhost:8460", "API server host")
	email := flag.String("email", "", "User email")
	password := flag.String("password", "", "User password")
	raw := flag.Bool("raw", false, "Print raw frames instead of a summary line per event")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	token, err := login(*host, *email, *password)
	if err != nil {
		log.Fatalf("❌ Login failed: %v", err)
	}
	log.Printf("✅ Logged in as %s", *email)

	ticket, err := getTicket(*host, token)
	if err != nil {
		log.Fatalf("❌ Ticket issuance failed: %v", err)
	}

	u := url.URL{Scheme: "ws", Host: *host, Path: "/api/ws/feed", RawQuery: "ticket=" + ticket}
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("❌ WebSocket dial failed: %v", err)
	}
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	defer func() { _ = conn.Close() }()

	log.Printf("📡 Tailing live feed on %s (Ctrl-C to stop)", u.String())

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
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func login(host, email, password string) (string, error) {
	loginURL := fmt.Sprintf("http://%s/api/auth/login", host)
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(loginURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

func getTicket(host, token string) (string, error) {
	ticketURL := fmt.Sprintf("http://%s/api/ws/ticket", host)
	req, _ := http.NewRequest(http.MethodPost, ticketURL, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ticket issuance failed with status %d", resp.StatusCode)
	}

	var result struct {
		Ticket string `json:"ticket"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Ticket, nil
}

func printEvent(message []byte, raw bool) {
	if raw {
		fmt.Println(string(message))
		return
	}

	var evt struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(message, &evt); err != nil || evt.Type == "" {
		fmt.Println(string(message))
		return
	}

	switch evt.Type {
	case "post_created":
		var p struct {
			Post struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"post"`
		}
		_ = json.Unmarshal(evt.Payload, &p)
		log.Printf("📝 new post %s: %q", p.Post.ID, p.Post.Title)
	case "post_liked":
		var p struct {
			PostID string `json:"post_id"`
			Likes  int64  `json:"likes"`
		}
		_ = json.Unmarshal(evt.Payload, &p)
		log.Printf("❤️  post %s now has %d likes", p.PostID, p.Likes)
	case "comment_created":
		var p struct {
			PostID  string `json:"post_id"`
			Comment struct {
				Text string `json:"text"`
			} `json:"comment"`
		}
		_ = json.Unmarshal(evt.Payload, &p)
		log.Printf("💬 comment on %s: %q", p.PostID, p.Comment.Text)
	default:
		log.Printf("event %s: %s", evt.Type, string(evt.Payload))
	}
}

package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/reify-dev/reify/pkg/element"
)

type fixedTree []element.FlatNode

func (f fixedTree) Snapshot() []element.FlatNode { return f }

func TestHealthz(t *testing.T) {
	srv := New()
	defer srv.Shutdown(context.Background())

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestTreeServesSnapshot(t *testing.T) {
	srv := New()
	defer srv.Shutdown(context.Background())
	srv.Watch(fixedTree{
		{Key: 1, Type: "Group", Path: "/Group_1", Parent: -1},
		{Key: 2, Type: "Model", Path: "/Group_1/Model_2", Parent: 0},
	})

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/tree")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var nodes []element.FlatNode
	if err := json.NewDecoder(resp.Body).Decode(&nodes); err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 {
		t.Fatalf("tree nodes = %d, want 2", len(nodes))
	}
	if nodes[1].Parent != 0 || nodes[1].Type != "Model" {
		t.Errorf("unexpected node %+v", nodes[1])
	}
}

func TestTreeEmptyWithoutSource(t *testing.T) {
	srv := New()
	defer srv.Shutdown(context.Background())

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/tree")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var nodes []element.FlatNode
	if err := json.NewDecoder(resp.Body).Decode(&nodes); err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 0 {
		t.Errorf("tree nodes = %d, want 0", len(nodes))
	}
}

func TestOpStreamDeliversEvents(t *testing.T) {
	srv := New()
	defer srv.Shutdown(context.Background())

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// wait for the server side to register the client
	deadline := time.Now().Add(2 * time.Second)
	for srv.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	srv.Op(element.OpEvent{
		Kind: element.OpCreateFailed,
		Key:  element.Key(0xBEEF),
		Type: "Model",
		Path: "/Group_1/Model_beef",
		Err:  errors.New("renderer said no"),
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}

	var msg opMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Kind != "create_failed" || msg.Type != "Model" {
		t.Errorf("message = %+v, want the emitted event", msg)
	}
	if msg.Key != "beef" {
		t.Errorf("key = %q, want %q", msg.Key, "beef")
	}
	if msg.Error == "" {
		t.Error("failure event lost its error text")
	}
}

func TestOpNeverBlocks(t *testing.T) {
	srv := New()
	defer srv.Shutdown(context.Background())

	// no clients, nobody draining: must still return promptly
	done := make(chan struct{})
	go func() {
		for i := 0; i < opBuffer*4; i++ {
			srv.Op(element.OpEvent{Kind: element.OpUpdate, Type: "Model"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Op blocked the tick")
	}
}

package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bdshop/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/segmentio/kafka-go"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e Event) error {
	r.events = append(r.events, e)
	return r.err
}

func TestMultiPublishesToAll(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("broker down")}
	m := Multi{ok, nil, failing}

	err := m.Publish(context.Background(), Event{Type: OrderCreated, OrderID: "o1"})
	if err == nil || !strings.Contains(err.Error(), "broker down") {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(ok.events) != 1 || len(failing.events) != 1 {
		t.Fatalf("every publisher should see the event")
	}
}

func TestForOrderKey(t *testing.T) {
	e := ForOrder(OrderStatusChanged, domain.Order{ID: "o1", Status: domain.OrderShipped, TotalPoisha: 100}, time.Now())
	if e.Key() != "order.status_changed.o1" || e.Status != domain.OrderShipped || e.Order == nil {
		t.Fatalf("unexpected event %+v", e)
	}
}

type stubWriter struct {
	msgs []kafka.Message
	err  error
}

func (s *stubWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	s.msgs = append(s.msgs, msgs...)
	return s.err
}

func (s *stubWriter) Close() error { return nil }

func TestKafkaPublisherEncodesEvent(t *testing.T) {
	w := &stubWriter{}
	p := &KafkaPublisher{w: w}
	e := ForOrder(OrderCreated, domain.Order{ID: "o1", Status: domain.OrderPending, TotalPoisha: 212500}, time.Now())
	if err := p.Publish(context.Background(), e); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(w.msgs) != 1 || string(w.msgs[0].Key) != "order.created.o1" {
		t.Fatalf("unexpected messages %+v", w.msgs)
	}
	var decoded Event
	if err := json.Unmarshal(w.msgs[0].Value, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.OrderID != "o1" || decoded.TotalPoisha != 212500 {
		t.Fatalf("unexpected payload %+v", decoded)
	}

	w.err = errors.New("timeout")
	if err := p.Publish(context.Background(), e); err == nil {
		t.Fatalf("expected write error")
	}
}

func TestHubBroadcastsToWebsocketClients(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := hub.Publish(context.Background(), Event{Type: OrderCreated, OrderID: "o42"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(msg), `"orderId":"o42"`) {
		t.Fatalf("unexpected message %s", msg)
	}
}

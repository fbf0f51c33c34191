package publish

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/segmentio/kafka-go"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error { return nil }

type doneToken struct{ err error }

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t doneToken) Error() error { return t.err }

type recordingClient struct {
	topic    string
	retained bool
	payload  []byte
}

func (c *recordingClient) Publish(topic string, _ byte, retained bool, payload interface{}) mqtt.Token {
	c.topic, c.retained, c.payload = topic, retained, payload.([]byte)
	return doneToken{}
}

func (c *recordingClient) Disconnect(uint) {}

func testEvent(t *testing.T) Event {
	t.Helper()
	ev, err := NewEvent("water", "Z1", "quality 93", time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC),
		map[string]any{"quality_score": 93})
	if err != nil {
		t.Fatal(err)
	}
	return ev
}

func TestNewEvent(t *testing.T) {
	ev := testEvent(t)
	if ev.ID == "" || ev.Key() != "water/Z1" {
		t.Fatalf("event = %+v", ev)
	}
	if string(ev.Report) != `{"quality_score":93}` {
		t.Fatalf("report = %s", ev.Report)
	}
}

func TestKafkaSinkKeysByZone(t *testing.T) {
	w := &recordingWriter{}
	sink := &KafkaSink{topic: "campus.reports", writer: w}
	ev := testEvent(t)

	if err := sink.Publish(context.Background(), ev); err != nil {
		t.Fatal(err)
	}
	if len(w.msgs) != 1 || string(w.msgs[0].Key) != "water/Z1" {
		t.Fatalf("msgs = %+v", w.msgs)
	}
	var got Event
	if err := json.Unmarshal(w.msgs[0].Value, &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != ev.ID {
		t.Fatalf("id = %s, want %s", got.ID, ev.ID)
	}
}

func TestNewKafkaSinkFlushesPromptly(t *testing.T) {
	sink, err := NewKafkaSink([]string{"localhost:9092"}, "campus.reports")
	if err != nil {
		t.Fatal(err)
	}
	w, ok := sink.writer.(*kafka.Writer)
	if !ok {
		t.Fatalf("writer = %T", sink.writer)
	}
	if w.BatchTimeout != kafkaBatchTimeout || w.BatchTimeout >= time.Second {
		t.Fatalf("batch timeout = %s", w.BatchTimeout)
	}
	if _, ok := w.Balancer.(*kafka.Hash); !ok {
		t.Fatalf("balancer = %T", w.Balancer)
	}

	if _, err := NewKafkaSink(nil, "campus.reports"); err == nil {
		t.Fatal("expected error without brokers")
	}
}

func TestMQTTSinkRetainsPerZone(t *testing.T) {
	c := &recordingClient{}
	sink := &MQTTSink{prefix: "campus", client: c}

	if err := sink.Publish(context.Background(), testEvent(t)); err != nil {
		t.Fatal(err)
	}
	if c.topic != "campus/water/Z1" || !c.retained || len(c.payload) == 0 {
		t.Fatalf("client = %+v", c)
	}
}

func TestMQTTTopicKeepsZoneToOneLevel(t *testing.T) {
	sink := &MQTTSink{prefix: "campus"}
	tests := []struct {
		zone string
		want string
	}{
		{"Z1", "campus/water/Z1"},
		{"a/b#+", "campus/water/a_b__"},
		{"lab#1", "campus/water/lab_1"},
		{"  north   lawn ", "campus/water/north_lawn"},
		{"", "campus/water/_"},
	}
	for _, tt := range tests {
		got := sink.Topic(Event{Domain: "water", Zone: tt.zone})
		if got != tt.want {
			t.Errorf("Topic(%q) = %q, want %q", tt.zone, got, tt.want)
		}
		if strings.ContainsAny(strings.TrimPrefix(got, "campus/water/"), "+#/") {
			t.Errorf("Topic(%q) = %q leaks a wildcard or separator", tt.zone, got)
		}
	}
}

func TestMultiJoinsErrorsAndObserves(t *testing.T) {
	boom := errors.New("broker down")
	seen := map[string]error{}
	m := NewMulti(func(sink string, err error) { seen[sink] = err },
		&KafkaSink{topic: "t", writer: &recordingWriter{err: boom}},
		&MQTTSink{prefix: "campus", client: &recordingClient{}},
	)

	err := m.Publish(context.Background(), testEvent(t))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if !errors.Is(seen["kafka"], boom) || seen["mqtt"] != nil {
		t.Fatalf("observed = %v", seen)
	}
	if m.Len() != 2 {
		t.Fatalf("len = %d", m.Len())
	}
}

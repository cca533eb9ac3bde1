package amqp

import (
	"testing"
	"time"
)

func TestDatasetRefreshMessageRoundTrip(t *testing.T) {
	msg := NewDatasetRefreshMessage(12345, 67)
	if msg.FetchedAt.IsZero() {
		t.Fatal("message not timestamped")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	got, err := DatasetRefreshMessageFromJSON(body)
	if err != nil {
		t.Fatal(err)
	}
	if got.RowCount != 12345 || got.DroppedRows != 67 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.FetchedAt.Truncate(time.Millisecond).Equal(msg.FetchedAt.Truncate(time.Millisecond)) {
		t.Errorf("timestamp drift: %v vs %v", got.FetchedAt, msg.FetchedAt)
	}
}

func TestDatasetRefreshMessageFromJSONInvalid(t *testing.T) {
	if _, err := DatasetRefreshMessageFromJSON([]byte("{oops")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

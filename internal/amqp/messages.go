package amqp

import (
	"encoding/json"
	"time"
)

// DatasetRefreshMessage announces that the snapshot worker stored a fresh
// copy of the remote dataset. Consumers (ops tooling, report jobs) react to
// the event; the payload carries only counters, not the rows themselves.
type DatasetRefreshMessage struct {
	RowCount    int       `json:"row_count"`
	DroppedRows int       `json:"dropped_rows"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// NewDatasetRefreshMessage creates a refresh event stamped with the current time.
func NewDatasetRefreshMessage(rowCount, droppedRows int) *DatasetRefreshMessage {
	return &DatasetRefreshMessage{
		RowCount:    rowCount,
		DroppedRows: droppedRows,
		FetchedAt:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DatasetRefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DatasetRefreshMessageFromJSON creates a message from JSON bytes
func DatasetRefreshMessageFromJSON(data []byte) (*DatasetRefreshMessage, error) {
	var msg DatasetRefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

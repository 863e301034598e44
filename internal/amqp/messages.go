package amqp

import (
	"encoding/json"
	"time"
)

// EntryRecordedMessage describes one appended ledger entry. It carries
// the full record so consumers never need to read the database.
type EntryRecordedMessage struct {
	ID        int64     `json:"id"`
	User      string    `json:"user"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryRecordedMessage(id int64, user, date, category string, amount int64) *EntryRecordedMessage {
	return &EntryRecordedMessage{
		ID:        id,
		User:      user,
		Date:      date,
		Category:  category,
		Amount:    amount,
		Timestamp: time.Now(),
	}
}

func (m *EntryRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntryRecordedMessageFromJSON(data []byte) (*EntryRecordedMessage, error) {
	var msg EntryRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

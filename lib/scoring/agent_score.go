// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AgentScoreMetric is the metric name reported by AgentScore.
const AgentScoreMetric = "agent_score"

// Message is one entry of an agent thread transcript.
type Message struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	AssistantID *string   `json:"assistant_id"`
	CreatedAt   Timestamp `json:"created_at"`
	ContentText string    `json:"content_text,omitempty"`
}

// Timestamp is a Unix time in seconds. Transcripts carry it either as
// a JSON number or as a decimal string.
type Timestamp int64

// UnmarshalJSON accepts 1739804579 and "1739804579".
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	text := string(bytes.Trim(data, `"`))
	if text == "null" || text == "" {
		*ts = 0
		return nil
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return fmt.Errorf("created_at %s: %w", data, err)
	}
	*ts = Timestamp(value)
	return nil
}

// ParseMessages decodes a transcript: a JSON array of messages.
func ParseMessages(transcript string) ([]Message, error) {
	var messages []Message
	if err := json.Unmarshal([]byte(transcript), &messages); err != nil {
		return nil, fmt.Errorf("parsing agent transcript: %w", err)
	}
	return messages, nil
}

// AgentExpectations are the targets a transcript is scored against.
type AgentExpectations struct {
	TotalMessages     int
	UserMessages      int
	AssistantMessages int

	// MaxTimeDifference is the largest allowed spread, in seconds,
	// between the earliest and latest message.
	MaxTimeDifference int64
}

// AgentScore runs four pass/fail checks and returns the percentage
// passed, truncated to an integer:
//   - the transcript has exactly TotalMessages messages;
//   - exactly AssistantMessages have role "assistant" and an assistant ID;
//   - exactly UserMessages have role "user" and no assistant ID;
//   - the created_at spread is at most MaxTimeDifference. Transcripts
//     with fewer than two messages always pass this check.
func AgentScore(messages []Message, expect AgentExpectations) int {
	passed := 0
	if len(messages) == expect.TotalMessages {
		passed++
	}

	assistants, users := 0, 0
	for _, message := range messages {
		switch {
		case message.AssistantID != nil && message.Role == "assistant":
			assistants++
		case message.AssistantID == nil && message.Role == "user":
			users++
		}
	}
	if assistants == expect.AssistantMessages {
		passed++
	}
	if users == expect.UserMessages {
		passed++
	}
	if timeSpreadWithin(messages, expect.MaxTimeDifference) {
		passed++
	}

	return passed * 100 / 4
}

func timeSpreadWithin(messages []Message, limit int64) bool {
	if len(messages) < 2 {
		return true
	}
	earliest, latest := messages[0].CreatedAt, messages[0].CreatedAt
	for _, message := range messages[1:] {
		earliest = min(earliest, message.CreatedAt)
		latest = max(latest, message.CreatedAt)
	}
	return int64(latest-earliest) <= limit
}

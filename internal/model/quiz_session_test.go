package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizSessionDeadline(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := &QuizSession{StartTime: start, DurationSeconds: 600}
	assert.Equal(t, start.Add(10*time.Minute), s.Deadline())
}

func TestViewStripsAnswerKeysWhileOngoing(t *testing.T) {
	opts := json.RawMessage(`["a","b"]`)
	s := &QuizSession{
		ID:     uuid.New(),
		Status: SessionStatusOngoing,
		Questions: []ConcreteQuestion{
			{QuestionID: uuid.New(), Text: "q0", Options: opts, CorrectOption: "0"},
			{QuestionID: uuid.New(), Text: "q1", Options: opts, CorrectOption: "1"},
		},
	}

	v := s.View()
	stripped, ok := v.Questions.([]ClientQuestion)
	require.True(t, ok)
	require.Len(t, stripped, 2)
	assert.Equal(t, 0, stripped[0].Index)
	assert.Equal(t, "q0", stripped[0].Text)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct_option")
}

func TestViewIncludesAnswerKeysWhenFinished(t *testing.T) {
	score := 50.0
	s := &QuizSession{
		ID:     uuid.New(),
		Status: SessionStatusFinished,
		Questions: []ConcreteQuestion{
			{QuestionID: uuid.New(), Text: "q0", Options: json.RawMessage(`["a","b"]`), CorrectOption: "0"},
		},
		Score: &score,
	}

	v := s.View()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "correct_option")
	assert.Equal(t, &score, v.Score)
}

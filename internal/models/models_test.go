package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64p(v int64) *int64 { return &v }

func TestActivationRecordActive(t *testing.T) {
	assert.False(t, ActivationRecord{}.Active())
	assert.False(t, ActivationRecord{ChatID: int64p(100)}.Active())
	assert.False(t, ActivationRecord{TopicID: int64p(5)}.Active())
	assert.True(t, ActivationRecord{ChatID: int64p(100), TopicID: int64p(5)}.Active())
}

func TestActivationRecordMatches(t *testing.T) {
	record := ActivationRecord{ChatID: int64p(100), TopicID: int64p(5)}

	assert.True(t, record.Matches(100, int64p(5)))
	assert.False(t, record.Matches(100, int64p(7)))
	assert.False(t, record.Matches(200, int64p(5)))
	assert.False(t, record.Matches(100, nil))

	empty := ActivationRecord{}
	assert.False(t, empty.Matches(100, int64p(5)))
	assert.False(t, empty.Matches(0, nil))
}

func TestActivationRecordNormalize(t *testing.T) {
	halfSet := ActivationRecord{ChatID: int64p(100)}
	assert.Equal(t, ActivationRecord{}, halfSet.Normalize())

	full := ActivationRecord{ChatID: int64p(100), TopicID: int64p(5)}
	assert.Equal(t, full, full.Normalize())
}

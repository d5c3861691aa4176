package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIDFromChannel(t *testing.T) {
	tests := []struct {
		channel string
		want    int
	}{
		{"user:42:notify", 42},
		{"user:1:notify", 1},
		{"user::notify", 0},
		{"user:abc:notify", 0},
		{"unrelated", 0},
		{"user:42:notify:extra", 0},
		{"", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, userIDFromChannel(tt.channel), tt.channel)
	}
}

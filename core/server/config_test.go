package server_test

import (
	"testing"

	"elternaccounts/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Valid(t *testing.T) {
	tests := []struct {
		name string
		port string
		want bool
	}{
		{"Default", "8080", true},
		{"Low", "1", true},
		{"Zero", "0", false},
		{"TooHigh", "70000", false},
		{"NotNumeric", "http", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Port: tt.port}
			assert.Equal(t, tt.want, c.Valid())
		})
	}
}

func TestConfig_Limits(t *testing.T) {
	assert.Equal(t, ":9000", server.Config{Port: "9000"}.Address())
	assert.Equal(t, 16*1024*1024, server.Config{}.BodyLimit())
	assert.Equal(t, 2*1024*1024, server.Config{BodyLimitMB: 2}.BodyLimit())
}

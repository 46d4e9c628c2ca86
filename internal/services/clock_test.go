package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfMonth(t *testing.T) {
	loc := time.FixedZone("PST", 8*60*60)

	got := startOfMonth(time.Date(2026, 3, 17, 5, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)

	// first instant of the month maps to itself
	first := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, first, startOfMonth(first))
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSecondsRemaining(t *testing.T) {
	now := time.Now()

	r := &Reservation{ExpiresAt: now.Add(300 * time.Second)}
	assert.Equal(t, 300, r.SecondsRemaining(now))

	r = &Reservation{ExpiresAt: now.Add(-5 * time.Second)}
	assert.Equal(t, 0, r.SecondsRemaining(now), "must clamp to zero once past expiry")

	r = &Reservation{ExpiresAt: now}
	assert.Equal(t, 0, r.SecondsRemaining(now))
}

func TestEventCategory_Valid(t *testing.T) {
	for _, c := range []EventCategory{CategoryConcert, CategoryMovie, CategoryTheater, CategoryConference, CategorySports, CategoryOther} {
		assert.True(t, c.Valid(), "%s should be valid", c)
	}
	assert.False(t, EventCategory("FESTIVAL").Valid())
	assert.False(t, EventCategory("").Valid())
	assert.False(t, EventCategory("concert").Valid(), "categories are upper-case")
}

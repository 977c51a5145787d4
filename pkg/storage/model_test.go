package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		age  time.Duration
		want Tier
	}{
		{0, TierHot},
		{59 * time.Minute, TierHot},
		{61 * time.Minute, TierWarm},
		{23 * time.Hour, TierWarm},
		{25 * time.Hour, TierCold},
		{167 * time.Hour, TierCold},
		{169 * time.Hour, TierFrozen},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TierFor(now.Add(-c.age), now), "age %s", c.age)
	}
}

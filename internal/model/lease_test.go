package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeaseIsCurrent(t *testing.T) {
	end := date(2026, 12, 31)
	lease := Lease{
		Status:    LeaseStatusActive,
		StartDate: date(2026, 1, 1),
		EndDate:   &end,
	}

	assert.True(t, lease.IsCurrent(date(2026, 6, 15)))
	assert.True(t, lease.IsCurrent(date(2026, 1, 1)))
	assert.False(t, lease.IsCurrent(date(2025, 12, 31)))
	assert.False(t, lease.IsCurrent(date(2027, 1, 1)))

	lease.Status = LeaseStatusDraft
	assert.False(t, lease.IsCurrent(date(2026, 6, 15)))
}

func TestLeaseIsCurrentOpenEnded(t *testing.T) {
	lease := Lease{
		Status:    LeaseStatusActive,
		StartDate: date(2026, 1, 1),
	}

	assert.True(t, lease.IsCurrent(date(2030, 1, 1)))
	assert.False(t, lease.IsCurrent(date(2025, 6, 1)))
}

func TestLeaseOverlaps(t *testing.T) {
	end := date(2026, 6, 30)
	lease := Lease{
		StartDate: date(2026, 1, 1),
		EndDate:   &end,
	}

	otherEnd := date(2026, 3, 31)
	assert.True(t, lease.Overlaps(date(2026, 3, 1), &otherEnd))

	// Adjacent periods do not overlap.
	assert.False(t, lease.Overlaps(date(2026, 6, 30), nil))

	before := date(2026, 1, 1)
	assert.False(t, lease.Overlaps(date(2025, 6, 1), &before))

	// Open-ended candidate starting inside the lease.
	assert.True(t, lease.Overlaps(date(2026, 5, 1), nil))
}

func TestLeaseOverlapsOpenEnded(t *testing.T) {
	lease := Lease{StartDate: date(2026, 1, 1)}

	assert.True(t, lease.Overlaps(date(2030, 1, 1), nil))

	end := date(2025, 12, 31)
	assert.False(t, lease.Overlaps(date(2025, 1, 1), &end))
}

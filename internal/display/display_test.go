package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDueLabel(t *testing.T) {
	assert.Equal(t, "Today", DueLabel("2025-08-12", "2025-08-12"))
	assert.Equal(t, "Tomorrow", DueLabel("2025-08-13", "2025-08-12"))
	assert.Equal(t, "Tomorrow", DueLabel("2025-09-01", "2025-08-31"), "month rollover")
	assert.Equal(t, "Aug 20, 2025", DueLabel("2025-08-20", "2025-08-12"))
	assert.Equal(t, "Aug 11, 2025", DueLabel("2025-08-11", "2025-08-12"))
	assert.Equal(t, "soon", DueLabel("soon", "2025-08-12"))
}

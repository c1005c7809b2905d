package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageFor(t *testing.T) {
	assert.Equal(t, "Your appointment has been confirmed.", MessageFor("confirmed"))
	assert.Equal(t, "Your vehicle is ready for pickup.", MessageFor("completed"))
	assert.Equal(t, "Your appointment has been cancelled.", MessageFor("cancelled"))

	// unknown statuses still produce something sendable
	assert.Equal(t, "Your appointment has been updated.", MessageFor("pending"))
	assert.Equal(t, "Your appointment has been updated.", MessageFor(""))
}

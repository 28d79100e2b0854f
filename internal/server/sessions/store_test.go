package sessions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_Namespacing(t *testing.T) {
	assert.Equal(t, "auth_abc123", Key("abc123"))
	assert.Equal(t, "auth_", Key(""))
}

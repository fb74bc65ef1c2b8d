package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectUnreachable(t *testing.T) {
	n, err := Connect("match-test", "nats://127.0.0.1:1", "secret")
	assert.Error(t, err)
	assert.Nil(t, n)
}

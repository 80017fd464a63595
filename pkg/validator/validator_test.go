package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStacksAddress(t *testing.T) {
	valid := []string{
		"ST23JSMGR5933QJ329PKPNNQJV6QG8Z9D33QBYDNX",
		"SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7",
		"SN3X6QWWETNBZWGBK6DRGTR1KX50S74D340JWTSC7",
	}
	for _, addr := range valid {
		assert.True(t, IsStacksAddress(addr), addr)
	}

	invalid := []string{
		"",
		"not-an-address",
		"ST23",
		"XX23JSMGR5933QJ329PKPNNQJV6QG8Z9D33QBYDNX",  // wrong prefix
		"ST23JSMGR5933QJ329PKPNNQJV6QG8Z9D33QBYDNO", // O not in c32 alphabet
		"st23jsmgr5933qj329pkpnnqjv6qg8z9d33qbydnx", // lowercase
	}
	for _, addr := range invalid {
		assert.False(t, IsStacksAddress(addr), addr)
	}
}

func TestStxAddressTag(t *testing.T) {
	type payload struct {
		Address string `validate:"required,stx_address"`
	}

	v := New()
	assert.NoError(t, v.Validate(payload{Address: "ST23JSMGR5933QJ329PKPNNQJV6QG8Z9D33QBYDNX"}))
	assert.Error(t, v.Validate(payload{Address: "bogus"}))
	assert.Error(t, v.Validate(payload{}))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		in string
		id int64
		ok bool
	}{
		{"123", 123, true},
		{"1844674407370955161", 1844674407370955161, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"12.5", 0, false},
	}
	for _, c := range cases {
		id, ok := ParseID(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		assert.Equal(t, c.id, id, "input %q", c.in)
	}
}

func TestCryptAndVerify(t *testing.T) {
	hashed, err := Crypt("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hashed)

	assert.True(t, VerifyPassword("hunter22", hashed))
	assert.False(t, VerifyPassword("hunter23", hashed))
	assert.False(t, VerifyPassword("", hashed))
}

func TestIDGeneratorUniquePositive(t *testing.T) {
	gen, err := NewIDGenerator(1, 1)
	require.NoError(t, err)

	seen := make(map[int64]struct{})
	for i := 0; i < 1000; i++ {
		id := gen.Generate()
		assert.Positive(t, id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
}

func TestIDGeneratorRange(t *testing.T) {
	_, err := NewIDGenerator(64, 0)
	assert.Error(t, err)
	_, err = NewIDGenerator(0, 64)
	assert.Error(t, err)
}

package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermanent(t *testing.T) {
	base := errors.New("user not mapped")
	err := fmt.Errorf("normalize punch: %w", Permanent(base))

	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, base)
	assert.False(t, IsPermanent(base))
	assert.Nil(t, Permanent(nil))
	assert.Same(t, Permanent(base).(*permanentError).err, base)
}

func TestSkip(t *testing.T) {
	err := Skip("no schedule for user %s", "u-1")

	assert.True(t, IsSkipped(err))
	assert.False(t, IsPermanent(err))
	assert.Contains(t, err.Error(), "u-1")
}

func TestDecode(t *testing.T) {
	type payload struct {
		ID string `json:"id"`
	}

	v, err := Decode[payload]([]byte(`{"id":"a"}`))
	require.NoError(t, err)
	assert.Equal(t, "a", v.ID)

	_, err = Decode[payload]([]byte(`{`))
	assert.True(t, IsPermanent(err))
}

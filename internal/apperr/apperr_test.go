package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	assert.True(t, errors.Is(Validation("bad input"), ErrValidation))
	assert.True(t, errors.Is(NotFound("no such post"), ErrNotFound))
	assert.True(t, errors.Is(Forbidden("not yours"), ErrForbidden))
	assert.True(t, errors.Is(Conflict("could not mint identifier"), ErrConflict))
	assert.True(t, errors.Is(Processing("resize failed", errors.New("boom")), ErrProcessing))

	assert.False(t, errors.Is(NotFound("no such post"), ErrForbidden))
}

func TestErrorIs_Wrapped(t *testing.T) {
	err := fmt.Errorf("save post: %w", NotFound("no such post"))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProcessing_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Processing("asset write failed", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "disk full")
}

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	assert.Nil(t, Required("userId", "u1"))

	ef := Required("userId", "   ")
	if assert.NotNil(t, ef) {
		assert.Equal(t, "userId", ef.Field)
	}
}

func TestErrsError(t *testing.T) {
	errs := Errs{
		{Field: "userId", Msg: "required"},
		{Field: "amount", Msg: "required"},
	}
	assert.Equal(t, "userId: required; amount: required", errs.Error())
}

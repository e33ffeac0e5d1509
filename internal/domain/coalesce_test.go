package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "홍대", CoalesceStr("", "  ", "홍대", "강남"))
	assert.Equal(t, "", CoalesceStr("", " "))
	assert.Equal(t, "", CoalesceStr())
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr("   "))
	p := StringPtr(" 서울 ")
	if assert.NotNil(t, p) {
		assert.Equal(t, "서울", *p)
	}
	assert.Equal(t, "", DerefStr(nil))
	assert.Equal(t, "서울", DerefStr(p))
}

func TestFloat64FromPtrWithDefault(t *testing.T) {
	assert.Equal(t, -1.0, Float64FromPtrWithDefault(-1))
	assert.Equal(t, -1.0, Float64FromPtrWithDefault(-1, nil, nil))
	assert.Equal(t, 50000.0, Float64FromPtrWithDefault(-1, nil, Float64Ptr(50000), Float64Ptr(70000)))
	assert.Equal(t, 0.0, Float64FromPtrWithDefault(-1, Float64Ptr(0)))
}

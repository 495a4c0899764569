package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "viagra", Normalize("V I A G R A"))
	assert.Equal(t, "조건만남", Normalize("조건 만남"))
	assert.Equal(t, "조건만남구함", Normalize("조건만남 구함"))
	assert.Equal(t, "lsd판매", Normalize("LSD\t판매"))
	assert.Equal(t, "", Normalize("   \n\t "))
	assert.Equal(t, "", Normalize(""))
}

func TestNormalizeIsDeterministic(t *testing.T) {
	in := "중고  전자레인지\n팝니다 ABC"
	assert.Equal(t, Normalize(in), Normalize(in))
}

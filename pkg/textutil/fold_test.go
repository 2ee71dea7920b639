package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/PuntoVenta-local/pkg/textutil"
)

func TestFold_MinusculasYSinAcentos(t *testing.T) {
	casos := []struct {
		in   string
		want string
	}{
		{"Café", "cafe"},
		{"CAFÉ", "cafe"},
		{"cafe", "cafe"},
		{"Azúcar Morena", "azucar morena"},
		{"Ñandú", "ñandu"}, // la ñ no es diacrítico combinante, se conserva
		{"", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, textutil.Fold(c.in), "Fold(%q)", c.in)
	}
}

func TestContainsFold_IgnoraAcentosYMayusculas(t *testing.T) {
	assert.True(t, textutil.ContainsFold("Café con Leche", "cafe"))
	assert.True(t, textutil.ContainsFold("azucar", "AZÚCAR"))
	assert.True(t, textutil.ContainsFold("lo que sea", ""))
	assert.False(t, textutil.ContainsFold("Café", "te"))
}

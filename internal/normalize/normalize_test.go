package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already clean", "manutencao preventiva", "manutencao preventiva"},
		{"diacritics stripped", "Manutenção PREVENTIVA do motor", "manutencao preventiva do motor"},
		{"punctuation to space", "OS#123: troca-de-correia (urgente!)", "os 123 troca de correia urgente"},
		{"whitespace collapsed", "  bomba   d'água \t linha  2 ", "bomba d agua linha 2"},
		{"cedilla and tilde", "correção não programada", "correcao nao programada"},
		{"digits kept", "moinho 3", "moinho 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{
		"Manutenção Preventiva do Aerador",
		"CORREÇÃO urgente!!! falha elétrica",
		"",
		"ças éêî õü 42",
	}
	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "normalize must be idempotent for %q", in)
	}
}

func TestTextCharset(t *testing.T) {
	out := Text("Verificação: nível d'óleo — 50% (ok?)")
	for _, r := range out {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' '
		assert.True(t, ok, "unexpected rune %q in %q", r, out)
	}
	assert.Equal(t, out, Text(out))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("Manutenção PREVENTIVA mensal", []string{"preventiv"}))
	assert.True(t, ContainsAny("CORRETIVA programada", []string{"preventiv", "corretiv"}))
	assert.False(t, ContainsAny("troca de rolamento", []string{"preventiv"}))
	assert.False(t, ContainsAny("qualquer texto", nil))
}

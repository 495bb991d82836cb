package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTipos(t *testing.T) {
	assert.Equal(t, []string{"Maciza", "Cuerito", "Surtida"}, ParseTipos("Maciza, Cuerito, Surtida"))
	assert.Equal(t, []string{"Maciza"}, ParseTipos("  Maciza  "))
	assert.Nil(t, ParseTipos(""))
	assert.Nil(t, ParseTipos(" , , "))
}

func TestTiposFieldUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want TiposField
	}{
		{"json array", `["Maciza","Cuerito"]`, TiposField{"Maciza", "Cuerito"}},
		{"array with padding", `[" Maciza ",""," Cuerito"]`, TiposField{"Maciza", "Cuerito"}},
		{"delimited string", `"Maciza, Cuerito, Surtida"`, TiposField{"Maciza", "Cuerito", "Surtida"}},
		{"empty string", `""`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TiposField
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var got TiposField
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
}

func TestProductoCreateRequestDecode(t *testing.T) {
	payload := `{"nombre":"Taco 15","precio":15,"categoria":"taco","tipos":"Maciza, Cuerito"}`

	var req ProductoCreateRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	assert.Equal(t, "Taco 15", req.Nombre)
	assert.Equal(t, 15.0, req.Precio)
	assert.Equal(t, TiposField{"Maciza", "Cuerito"}, req.Tipos)
	assert.Nil(t, req.Disponible)
}

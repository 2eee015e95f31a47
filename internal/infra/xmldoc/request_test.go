package xmldoc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andresmx/sentimsg/internal/domain/messages"
	"github.com/andresmx/sentimsg/internal/infra/xmldoc"
)

const sampleRequest = `<?xml version="1.0"?>
<solicitud_analisis>
  <diccionario>
    <sentimientos_positivos>
      <palabra>Bueno</palabra>
      <palabra>excelente</palabra>
    </sentimientos_positivos>
    <sentimientos_negativos>
      <palabra>MALO</palabra>
    </sentimientos_negativos>
    <empresas_analizar>
      <empresa>
        <nombre>Empresa_X</nombre>
        <servicio nombre="soporte">
          <alias>Atencion</alias>
          <alias>ayuda</alias>
        </servicio>
        <servicio>
          <alias>cajero</alias>
        </servicio>
      </empresa>
      <empresa>
        <nombre>Banco_Y</nombre>
      </empresa>
    </empresas_analizar>
  </diccionario>
  <lista_mensajes>
    <mensaje>
      Lugar y fecha: Centro, 05/03/2024 14:30Usuario: ana Red social: Twitter el producto de Empresa_X fue malo
    </mensaje>
    <mensaje>sin formato</mensaje>
  </lista_mensajes>
</solicitud_analisis>`

func TestParseAnalysisRequest(t *testing.T) {
	cmd, err := xmldoc.ParseAnalysisRequest([]byte(sampleRequest))
	require.NoError(t, err)

	require.Contains(t, cmd.Keywords.Positive, "bueno")
	require.Contains(t, cmd.Keywords.Positive, "excelente")
	require.Contains(t, cmd.Keywords.Negative, "malo")

	require.Len(t, cmd.Catalog, 2)
	require.Equal(t, "Empresa_X", cmd.Catalog[0].Name)
	require.Len(t, cmd.Catalog[0].Services, 2)
	require.Equal(t, "soporte", cmd.Catalog[0].Services[0].Name)
	require.Equal(t, []string{"atencion", "ayuda"}, cmd.Catalog[0].Services[0].Aliases)
	// servicio without a nombre attribute falls back to the unknown sentinel
	require.Equal(t, "unknown", cmd.Catalog[0].Services[1].Name)
	require.Equal(t, "Banco_Y", cmd.Catalog[1].Name)
	require.Empty(t, cmd.Catalog[1].Services)

	require.Len(t, cmd.Messages, 2)
	require.Equal(t, "sin formato", cmd.Messages[1])
	require.Contains(t, cmd.Messages[0], "Usuario: ana")

	require.Equal(t, []byte(sampleRequest), cmd.Document)
}

func TestParseAnalysisRequestMissingSections(t *testing.T) {
	cmd, err := xmldoc.ParseAnalysisRequest([]byte(`<solicitud_analisis></solicitud_analisis>`))
	require.NoError(t, err)
	require.Empty(t, cmd.Keywords.Positive)
	require.Empty(t, cmd.Keywords.Negative)
	require.Empty(t, cmd.Catalog)
	require.Empty(t, cmd.Messages)
}

func TestParseAnalysisRequestDropsUnnamedCompanies(t *testing.T) {
	doc := `<root><empresa><nombre>  </nombre></empresa><empresa><nombre>Real</nombre></empresa></root>`
	cmd, err := xmldoc.ParseAnalysisRequest([]byte(doc))
	require.NoError(t, err)
	require.Len(t, cmd.Catalog, 1)
	require.Equal(t, "Real", cmd.Catalog[0].Name)
}

func TestParseAnalysisRequestMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "not xml", doc: "hola"},
		{name: "unclosed element", doc: "<solicitud_analisis><mensaje>"},
		{name: "mismatched tags", doc: "<a><b></a></b>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := xmldoc.ParseAnalysisRequest([]byte(tt.doc))
			require.ErrorIs(t, err, messages.ErrMalformedDocument)
		})
	}
}

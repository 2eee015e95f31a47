package dictionaries_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andresmx/sentimsg/internal/domain/dictionaries"
)

func TestResolve(t *testing.T) {
	catalog := dictionaries.Catalog{
		{
			Name: "Empresa_X",
			Services: []dictionaries.Service{
				{Name: "soporte", Aliases: []string{"atencion"}},
				{Name: "cajero", Aliases: []string{"cajero", "atm"}},
			},
		},
		{
			Name:     "Banco_Y",
			Services: []dictionaries.Service{{Name: "app", Aliases: []string{"aplicacion"}}},
		},
	}

	tests := []struct {
		name        string
		body        string
		wantCompany string
		wantService string
	}{
		{
			name:        "company without service alias",
			body:        "el producto de Empresa_X fue malo",
			wantCompany: "Empresa_X",
			wantService: "unknown",
		},
		{
			name:        "company and service",
			body:        "la atencion de empresa_x fue lenta",
			wantCompany: "Empresa_X",
			wantService: "soporte",
		},
		{
			name:        "first service with alias wins",
			body:        "empresa_x: el atm y la atencion",
			wantCompany: "Empresa_X",
			wantService: "soporte",
		},
		{
			name:        "second company",
			body:        "la aplicacion de banco_y es buena",
			wantCompany: "Banco_Y",
			wantService: "app",
		},
		{
			name:        "no match",
			body:        "nada que ver aqui",
			wantCompany: "unknown",
			wantService: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			company, service := dictionaries.Resolve(tt.body, catalog)
			require.Equal(t, tt.wantCompany, company)
			require.Equal(t, tt.wantService, service)
		})
	}
}

// Resolution is first-match-wins in declaration order: an earlier company
// whose name is a substring of a later one shadows it.
func TestResolveDeclarationOrderWins(t *testing.T) {
	catalog := dictionaries.Catalog{
		{Name: "Banco"},
		{Name: "Banco_Central", Services: []dictionaries.Service{{Name: "bodega", Aliases: []string{"bodega"}}}},
	}

	company, service := dictionaries.Resolve("fui a banco_central y su bodega", catalog)
	require.Equal(t, "Banco", company)
	require.Equal(t, "unknown", service)
}

func TestResolveEmptyAliasListNeverMatches(t *testing.T) {
	catalog := dictionaries.Catalog{
		{Name: "Tiendas_Z", Services: []dictionaries.Service{{Name: "envios"}}},
	}

	company, service := dictionaries.Resolve("tiendas_z manda envios tarde", catalog)
	require.Equal(t, "Tiendas_Z", company)
	require.Equal(t, "unknown", service)
}

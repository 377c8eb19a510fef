package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/catalog"
)

const catalogsYAML = `
catalogs:
  - name: yarnspirations
    url_template: "https://www.yarnspirations.com/collections/patterns?filter.p.m.global.project_type={category}&page={page}"
    categories: [Tops, Dresses, Skirts, Pants, Jackets]
  - name: local
    url_template: "http://localhost:8080/{category}/{page}"
    categories: "Hats,Scarves"
    link_selector: "a.download"
    document_suffix: ".PDF"
    max_pages: "5"
`

func writeCatalogs(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalogs.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	defs, err := catalog.NewLoader(writeCatalogs(t, catalogsYAML)).Load()
	require.NoError(t, err)
	require.Len(t, defs, 2)

	yarn := defs[0]
	assert.Equal(t, "yarnspirations", yarn.Name)
	assert.Equal(t, []string{"Tops", "Dresses", "Skirts", "Pants", "Jackets"}, yarn.Categories)
	assert.Equal(t, catalog.DefaultLinkSelector, yarn.LinkSelector)
	assert.Equal(t, catalog.DefaultDocumentSuffix, yarn.DocumentSuffix)
	assert.Equal(t, catalog.DefaultMaxPages, yarn.MaxPages)

	local := defs[1]
	assert.Equal(t, []string{"Hats", "Scarves"}, local.Categories)
	assert.Equal(t, "a.download", local.LinkSelector)
	assert.Equal(t, 5, local.MaxPages)
}

func TestLoader_Find(t *testing.T) {
	t.Parallel()

	loader := catalog.NewLoader(writeCatalogs(t, catalogsYAML))

	def, err := loader.Find("local")
	require.NoError(t, err)
	assert.Equal(t, "local", def.Name)

	def, err = loader.Find("")
	require.NoError(t, err)
	assert.Equal(t, "yarnspirations", def.Name)

	_, err = loader.Find("ravelry")
	require.ErrorIs(t, err, catalog.ErrCatalogNotFound)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"empty", "catalogs: []", catalog.ErrNoCatalogs},
		{"missing name", "catalogs:\n  - url_template: 'http://x/{page}'\n    categories: [A]", catalog.ErrMissingRequiredField},
		{"missing categories", "catalogs:\n  - name: x\n    url_template: 'http://x/{page}'", catalog.ErrMissingRequiredField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := catalog.Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := catalog.Parse([]byte("catalogs:\n  - name: x\n    url_template: 'http://x/'\n    categories: [A]"))
	require.Error(t, err)
}

func TestDefinition_PageURL(t *testing.T) {
	t.Parallel()

	def := catalog.Definition{URLTemplate: "https://example.com/patterns?type={category}&page={page}"}
	assert.Equal(t, "https://example.com/patterns?type=Baby+Blankets&page=3", def.PageURL("Baby Blankets", 3))
	assert.True(t, catalog.Definition{Categories: []string{"Tops"}}.HasCategory("Tops"))
}

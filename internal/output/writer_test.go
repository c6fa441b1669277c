package output

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/appgen/internal/compiler"
	"github.com/vvka-141/appgen/internal/diag"
	"github.com/vvka-141/appgen/internal/files/filesystem"
	"github.com/vvka-141/appgen/internal/logging"
	"github.com/vvka-141/appgen/internal/scaffold"
	"github.com/vvka-141/appgen/internal/spec"
	"github.com/vvka-141/appgen/pkg/appgen"
)

const app = `
x-ddd:
  boundedContext: Billing
components:
  schemas:
    Customer:
      x-persistence: {isEntity: true}
      properties:
        id: {type: string, format: uuid, x-persistence: {isPrimaryKey: true}}
    Note:
      x-persistence: {isEntity: true}
      properties:
        id: {type: integer, x-persistence: {isPrimaryKey: true}}
        author: {x-persistence: {relation: {joinColumn: author_id, targetEntity: Author}}}
`

func compile(t *testing.T, src string) *compiler.Result {
	t.Helper()
	doc, err := spec.Parse([]byte(src), "app.yaml")
	require.NoError(t, err)
	res, err := compiler.Compile(doc, compiler.Options{Unresolved: appgen.UnresolvedWarn})
	require.NoError(t, err)
	return res
}

func TestWriter_WritesSchemaAndManifest(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	res := compile(t, app)

	written, err := NewWriter(mfs, logging.NewNullLogger()).Write("/work/out", Artifacts{
		Result:        res,
		Source:        "specs/app.yaml",
		SchemaFile:    appgen.DefaultSchemaFile,
		WriteManifest: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/work/out/schema.sql", "/work/out/appgen.manifest.yaml"}, written)

	sql, err := mfs.ReadFile("/work/out/schema.sql")
	require.NoError(t, err)
	assert.Equal(t, res.SQL+"\n", string(sql))

	data, err := mfs.ReadFile("/work/out/appgen.manifest.yaml")
	require.NoError(t, err)
	m, err := ReadManifest(data)
	require.NoError(t, err)

	assert.Equal(t, "appgen", m.Generator)
	assert.Equal(t, "Billing", m.BoundedContext)
	assert.Equal(t, "specs/app.yaml", m.Source)
	assert.Equal(t, "schema.sql", m.SchemaFile)
	assert.Equal(t, []string{"customer", "note"}, m.Tables)
	assert.False(t, m.Deferred)
	assert.Len(t, m.Checksum.Raw, 64)
	assert.Len(t, m.Checksum.Normalized, 64)
	assert.Equal(t, SchemaID("Billing", m.Checksum.Normalized).String(), m.SchemaID)
	require.Len(t, m.Diagnostics, 1)
	assert.Equal(t, diag.CodeUnresolvedReference, m.Diagnostics[0].Code)
}

func TestWriter_RepeatedRunsAreIdentical(t *testing.T) {
	write := func() ([]byte, []byte) {
		mfs := filesystem.NewMemoryFileSystem("/work")
		_, err := NewWriter(mfs, logging.NewNullLogger()).Write("out", Artifacts{
			Result:        compile(t, app),
			Source:        "app.yaml",
			SchemaFile:    "schema.sql",
			WriteManifest: true,
		})
		require.NoError(t, err)
		sql, _ := mfs.ReadFile("out/schema.sql")
		manifest, _ := mfs.ReadFile("out/appgen.manifest.yaml")
		return sql, manifest
	}

	sql1, manifest1 := write()
	sql2, manifest2 := write()
	assert.Equal(t, sql1, sql2)
	assert.Equal(t, manifest1, manifest2)
}

func TestWriter_ScaffoldOnly(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	files := []scaffold.File{
		{Name: "doc.go", Content: []byte("package billing\n")},
		{Name: "models.go", Content: []byte("package billing\n")},
	}

	written, err := NewWriter(mfs, logging.NewNullLogger()).Write("/work/out", Artifacts{
		Result:          compile(t, app),
		ScaffoldPackage: "billing",
		Scaffold:        files,
		WriteManifest:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/work/out/billing/doc.go",
		"/work/out/billing/models.go",
		"/work/out/appgen.manifest.yaml",
	}, written)

	_, err = mfs.Stat("/work/out/schema.sql")
	assert.Error(t, err)

	data, _ := mfs.ReadFile("/work/out/appgen.manifest.yaml")
	m, err := ReadManifest(data)
	require.NoError(t, err)
	assert.Empty(t, m.SchemaFile)
	assert.Equal(t, []string{"billing/doc.go", "billing/models.go"}, m.Scaffold)
}

func TestWriter_NoManifest(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	written, err := NewWriter(mfs, logging.NewNullLogger()).Write("out", Artifacts{
		Result:     compile(t, app),
		SchemaFile: "billing.sql",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/work/out/billing.sql"}, mfs.Files())
	assert.Len(t, written, 1)
}

func TestWriter_EmptySchema(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	_, err := NewWriter(mfs, logging.NewNullLogger()).Write("out", Artifacts{
		Result:     compile(t, "openapi: 3.0.0\n"),
		SchemaFile: "schema.sql",
	})
	require.NoError(t, err)

	content, err := mfs.ReadFile("out/schema.sql")
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestWriter_FailureWrapsOutputError(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	mfs.AddFile("out", "a file where the directory should be")

	_, err := NewWriter(mfs, logging.NewNullLogger()).Write("/work/out", Artifacts{
		Result:     compile(t, app),
		SchemaFile: "schema.sql",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appgen.ErrOutputFailed))
	assert.Equal(t, appgen.ExitOutputFailed, appgen.ExitCodeForError(err))
}

func TestWriter_NilResult(t *testing.T) {
	_, err := NewWriter(filesystem.NewMemoryFileSystem("/"), logging.NewNullLogger()).Write("out", Artifacts{})
	assert.True(t, errors.Is(err, appgen.ErrOutputFailed))
}

func TestSchemaID(t *testing.T) {
	a := SchemaID("Billing", "abc")
	assert.Equal(t, a, SchemaID(" billing ", "abc"), "case and surrounding space do not matter")
	assert.NotEqual(t, a, SchemaID("Billing", "abd"))
	assert.NotEqual(t, a, SchemaID("Shipping", "abc"))
	assert.Equal(t, 5, int(a.Version()))
}

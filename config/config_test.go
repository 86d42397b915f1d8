package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnums_MissingFileFallsBackToDefaults(t *testing.T) {
	enums, err := LoadEnums(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"owner", "affiliate"}, enums.MemberTypes)
	assert.ElementsMatch(t, []string{"active", "inactive", "pending", "expired"}, enums.Statuses)
	assert.True(t, enums.IsValidMemberType("owner"))
	assert.False(t, enums.IsValidMemberType("guest"))
	assert.True(t, enums.IsValidStatus("pending"))
	assert.False(t, enums.IsValidStatus("suspended"))
}

func TestLoadEnums_FromFile(t *testing.T) {
	content := `enums:
  memberTypes:
    - owner
    - affiliate
    - corporate
  statuses:
    - active
    - inactive
  statusLabels:
    active: Ativo
    inactive: Inativo
`
	path := filepath.Join(t.TempDir(), "enums.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	enums, err := LoadEnums(path)
	require.NoError(t, err)

	assert.True(t, enums.IsValidMemberType("corporate"))
	assert.True(t, enums.IsValidStatus("active"))
	assert.False(t, enums.IsValidStatus("pending"))
	assert.Equal(t, "Ativo", enums.LabelFor("active"))
}

func TestLoadEnums_MalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enums.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0o644))

	enums, err := LoadEnums(path)
	require.NoError(t, err)
	assert.True(t, enums.IsValidMemberType("owner"))
}

func TestLoadEnums_PartialFileKeepsDefaultsForMissingSections(t *testing.T) {
	content := `enums:
  statuses:
    - active
`
	path := filepath.Join(t.TempDir(), "enums.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	enums, err := LoadEnums(path)
	require.NoError(t, err)

	assert.True(t, enums.IsValidMemberType("affiliate"), "member types default when absent")
	assert.False(t, enums.IsValidStatus("pending"), "statuses come from the file")
	assert.Equal(t, "Expirado", enums.LabelFor("expired"), "labels default when absent")
}

func TestLabelFor_UnknownStatusReturnsRawValue(t *testing.T) {
	enums := GetDefaultEnums()
	assert.Equal(t, "frozen", enums.LabelFor("frozen"))
}

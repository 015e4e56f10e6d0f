package famconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsNonPositiveSeparation(t *testing.T) {
	cfg := Default()
	cfg.Layout.NodeSeparation = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingBucket(t *testing.T) {
	cfg := Default()
	cfg.NATS.Bucket = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingNATSURLs(t *testing.T) {
	cfg := Default()
	cfg.NATS.URLs = nil
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingHTTPAddr(t *testing.T) {
	cfg := Default()
	cfg.HTTP.Addr = ""
	assert.Error(t, cfg.Validate())
}

func TestLoadWithEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "famtree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
layout:
  node_separation: 300
  level_separation: 180
  is_horizontal: true
nats:
  urls: ["nats://n1:4222", "nats://n2:4222"]
  bucket: custom-bucket
http:
  addr: ":9000"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.Layout.NodeSeparation)
	assert.Equal(t, 180.0, cfg.Layout.LevelSeparation)
	assert.True(t, cfg.Layout.IsHorizontal)
	assert.Equal(t, []string{"nats://n1:4222", "nats://n2:4222"}, cfg.NATS.URLs)
	assert.Equal(t, "custom-bucket", cfg.NATS.Bucket)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
}

func TestLoadReturnsErrorForMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadReturnsErrorForInvalidResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "famtree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
nats:
  bucket: ""
`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FAMTREE_NATS_URLS", "nats://a:4222,nats://b:4222")
	t.Setenv("FAMTREE_NATS_BUCKET", "env-bucket")
	t.Setenv("FAMTREE_HTTP_ADDR", ":7777")
	t.Setenv("FAMTREE_LAYOUT_NODE_SEPARATION", "400")
	t.Setenv("FAMTREE_LAYOUT_HORIZONTAL", "1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"nats://a:4222", "nats://b:4222"}, cfg.NATS.URLs)
	assert.Equal(t, "env-bucket", cfg.NATS.Bucket)
	assert.Equal(t, ":7777", cfg.HTTP.Addr)
	assert.Equal(t, 400.0, cfg.Layout.NodeSeparation)
	assert.True(t, cfg.Layout.IsHorizontal)
}

func TestSafeConfigGetAndUpdate(t *testing.T) {
	sc := NewSafeConfig(Default())
	assert.Equal(t, Default().Layout.NodeSeparation, sc.Get().Layout.NodeSeparation)

	updated := Default()
	updated.Layout.NodeSeparation = 999
	require.NoError(t, sc.Update(updated))
	assert.Equal(t, 999.0, sc.Get().Layout.NodeSeparation)
}

func TestSafeConfigUpdateRejectsNil(t *testing.T) {
	sc := NewSafeConfig(Default())
	assert.Error(t, sc.Update(nil))
}

func TestSafeConfigUpdateRejectsInvalid(t *testing.T) {
	sc := NewSafeConfig(Default())
	bad := Default()
	bad.HTTP.Addr = ""
	assert.Error(t, sc.Update(bad))
	assert.Equal(t, Default().HTTP.Addr, sc.Get().HTTP.Addr)
}

func TestNewSafeConfigNilFallsBackToDefault(t *testing.T) {
	sc := NewSafeConfig(nil)
	assert.Equal(t, Default().NATS.Bucket, sc.Get().NATS.Bucket)
}

func TestToLayoutConfig(t *testing.T) {
	lc := LayoutConfig{
		NodeSeparation:         300,
		LevelSeparation:        180,
		SingleParentEmptyCard:  true,
		IsHorizontal:           true,
		ShowSiblingsOfMain:     true,
		DuplicateBranchToggle:  true,
		OnToggleOneCloseOthers: true,
	}

	got := lc.ToLayoutConfig()
	assert.Equal(t, 300.0, got.NodeSeparation)
	assert.Equal(t, 180.0, got.LevelSeparation)
	assert.True(t, got.SingleParentEmptyCard)
	assert.True(t, got.IsHorizontal)
	assert.True(t, got.ShowSiblingsOfMain)
	assert.True(t, got.DuplicateBranchToggle)
	assert.True(t, got.OnToggleOneCloseOthers)
}

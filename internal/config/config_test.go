package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func requireErrEq(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if err.Error() != want {
		t.Fatalf("error=%q want %q", err.Error(), want)
	}
}

func TestLoad_FileRequiresPath(t *testing.T) {
	path := writeTempConfig(t, "source: {}\n")
	_, err := Load(path)
	requireErrEq(t, err, "source.path is required when source.kind is 'file'")
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeTempConfig(t, "source:\n  path: './track.nmea'\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source.Kind != "file" {
		t.Fatalf("kind=%q want file", cfg.Source.Kind)
	}
	if !cfg.Source.Enabled() {
		t.Fatalf("expected source enabled by default")
	}
	if cfg.Source.ChunkSize != 1024 || cfg.Source.MaxFragment != 64*1024 || cfg.Source.RecentLines != 100 {
		t.Fatalf("expected stream defaults applied, got %+v", cfg.Source)
	}
	if cfg.Web.Listen != "127.0.0.1:8080" {
		t.Fatalf("listen=%q want 127.0.0.1:8080", cfg.Web.Listen)
	}
	if cfg.Store.Enable {
		t.Fatalf("store should default to disabled")
	}
}

func TestLoad_TCPDefaultsAddr(t *testing.T) {
	path := writeTempConfig(t, "source:\n  kind: TCP\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source.Kind != "tcp" || cfg.Source.Addr != "127.0.0.1:10110" {
		t.Fatalf("source=%+v want tcp at 127.0.0.1:10110", cfg.Source)
	}
}

func TestLoad_SourceValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "unknown kind",
			body: "source:\n  kind: serial\n",
			want: `source.kind must be one of file, stdin, tcp (got "serial")`,
		},
		{
			name: "negative chunk",
			body: "source:\n  kind: stdin\n  chunk_size: -1\n",
			want: "source.chunk_size must be >= 0",
		},
		{
			name: "negative fragment",
			body: "source:\n  kind: stdin\n  max_fragment: -5\n",
			want: "source.max_fragment must be >= 0",
		},
		{
			name: "separator with marker",
			body: "source:\n  kind: stdin\n  separator: '$'\n",
			want: "source.separator must not contain '$' or '*'",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempConfig(t, tc.body)
			_, err := Load(path)
			requireErrEq(t, err, tc.want)
		})
	}
}

func TestLoad_StoreRequiresPath(t *testing.T) {
	path := writeTempConfig(t, "source:\n  kind: stdin\nstore:\n  enable: true\n")
	_, err := Load(path)
	requireErrEq(t, err, "store.path is required when store.enable is true")
}

func TestLoad_ForwardRequiresDest(t *testing.T) {
	path := writeTempConfig(t, "source:\n  kind: stdin\nforward:\n  enable: true\n")
	_, err := Load(path)
	requireErrEq(t, err, "forward.dest is required when forward.enable is true")
}

func TestLoad_DisabledSourceNeedsWeb(t *testing.T) {
	path := writeTempConfig(t, "source:\n  enable: false\n")
	_, err := Load(path)
	requireErrEq(t, err, "source and web cannot both be disabled")

	path = writeTempConfig(t, "source:\n  enable: false\nweb:\n  enable: true\n  listen: ':9000'\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source.Enabled() || cfg.Web.Listen != ":9000" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "source: [\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected yaml error")
	}
}

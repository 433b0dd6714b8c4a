package version

import "testing"

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"bare", Info{Version: "dev"}, "dev"},
		{"commit", Info{Version: "v1.0.0", GitCommit: "abc1234"}, "v1.0.0 (abc1234)"},
		{"dirty", Info{Version: "v1.0.0", GitCommit: "abc1234", Dirty: true}, "v1.0.0 (abc1234-dirty)"},
		{
			"full",
			Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "2026-10-01T08:00:00Z", GoVersion: "go1.26.0"},
			"v1.0.0 (abc1234, built 2026-10-01T08:00:00Z, go1.26.0)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGet_UsesLdflags(t *testing.T) {
	orig, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = orig, origCommit }()

	Version = "v9.9.9"
	GitCommit = "deadbeefcafe"
	info := Get()
	if info.Version != "v9.9.9" {
		t.Errorf("expected v9.9.9, got %q", info.Version)
	}
	if info.GitCommit != "deadbee" {
		t.Errorf("expected commit shortened to 7 chars, got %q", info.GitCommit)
	}
}

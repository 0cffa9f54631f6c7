package updater

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// --- normalize ---

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"v1.2.3", "1.2.3"},
		{"1.2.3", "1.2.3"},
		{"", ""},
		{"v", ""},
	}
	for _, tt := range tests {
		if got := normalize(tt.input); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// --- isNewer ---

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{"newer patch", "0.2.0", "0.2.1", true},
		{"newer minor", "0.2.0", "0.3.0", true},
		{"newer major", "0.2.0", "1.0.0", true},
		{"same version", "0.2.0", "0.2.0", false},
		{"older version", "0.3.0", "0.2.0", false},
		{"empty current", "", "0.2.0", false},
		{"empty latest", "0.2.0", "", false},
		{"dev never updates", "dev", "99.0.0", false},
		{"two part current", "0.2", "0.3.0", true},
		{"double digit minor", "0.9.0", "0.10.0", true},
		{"prerelease suffix compares numerically", "1.0.0", "1.0.1-rc1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNewer(tt.current, tt.latest); got != tt.want {
				t.Errorf("isNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

// --- CheckVersion ---

// withReleaseServer points the updater at a fake GitHub API for the
// duration of one test.
func withReleaseServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	origEndpoint, origClient := releaseEndpoint, httpClient
	releaseEndpoint = srv.URL
	httpClient = srv.Client()
	t.Cleanup(func() {
		releaseEndpoint, httpClient = origEndpoint, origClient
		srv.Close()
	})
}

func TestCheckVersion_UpdateAvailable(t *testing.T) {
	withReleaseServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tag_name": "v0.3.0",
			"html_url": "https://example.com/release",
		})
	})

	result := CheckVersion("0.2.0")
	if !result.UpdateAvailable {
		t.Error("UpdateAvailable = false, want true")
	}
	if result.LatestVersion != "0.3.0" {
		t.Errorf("LatestVersion = %q", result.LatestVersion)
	}
	if result.ReleaseURL != "https://example.com/release" {
		t.Errorf("ReleaseURL = %q", result.ReleaseURL)
	}
}

func TestCheckVersion_AlreadyLatest(t *testing.T) {
	withReleaseServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"tag_name": "v0.2.0"})
	})

	if result := CheckVersion("0.2.0"); result.UpdateAvailable {
		t.Error("UpdateAvailable = true, want false")
	}
}

func TestCheckVersion_APIFailureIsSilent(t *testing.T) {
	withReleaseServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	})

	result := CheckVersion("0.2.0")
	if result.UpdateAvailable {
		t.Error("UpdateAvailable = true after API failure")
	}
	if result.CurrentVersion != "0.2.0" {
		t.Errorf("CurrentVersion = %q", result.CurrentVersion)
	}
}

// --- extractBinary ---

func buildTarGz(t *testing.T, name string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{Name: name, Mode: 0o755, Size: int64(len(data))}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractBinary_FindsGrove(t *testing.T) {
	archive := buildTarGz(t, "grove_1.0.0_linux_amd64/grove", []byte("fake binary"))

	data, err := extractBinary(bytes.NewReader(archive), "grove_1.0.0_linux_amd64.tar.gz")
	if err != nil {
		t.Fatalf("extractBinary() error = %v", err)
	}
	if string(data) != "fake binary" {
		t.Errorf("data = %q", data)
	}
}

func TestExtractBinary_MissingBinary(t *testing.T) {
	archive := buildTarGz(t, "README.md", []byte("docs only"))

	if _, err := extractBinary(bytes.NewReader(archive), "grove_1.0.0_linux_amd64.tar.gz"); err == nil {
		t.Fatal("extractBinary() = nil error, want not-found")
	}
}

func TestExtractBinary_ZipUnsupported(t *testing.T) {
	_, err := extractBinary(strings.NewReader("zip bytes"), "grove_1.0.0_windows_amd64.zip")
	if err == nil || !strings.Contains(err.Error(), "zip") {
		t.Fatalf("err = %v, want zip-unsupported error", err)
	}
}

// --- buildAssetName ---

func TestBuildAssetName(t *testing.T) {
	name := buildAssetName("1.2.3")
	if !strings.HasPrefix(name, "grove_1.2.3_") {
		t.Errorf("buildAssetName() = %q", name)
	}
	if !strings.HasSuffix(name, ".tar.gz") && !strings.HasSuffix(name, ".zip") {
		t.Errorf("buildAssetName() = %q, want archive extension", name)
	}
}

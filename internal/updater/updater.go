// Package updater checks GitHub releases for a newer grove and can
// replace the running binary in place. The Releases API needs no auth
// for public repos, and the swap is atomic: download to a temp file,
// rename over the current executable. There is no auto-restart; a
// serving process keeps running the old version until restarted.
package updater

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const (
	githubRepo = "livingtree/grove"
	releaseURL = "https://api.github.com/repos/" + githubRepo + "/releases/latest"

	// checkTimeout bounds the GitHub API call.
	checkTimeout = 10 * time.Second
)

// Test seams: the release endpoint and HTTP client can be swapped.
var (
	releaseEndpoint = releaseURL
	httpClient      = &http.Client{Timeout: checkTimeout}
)

// release holds the fields we read from a GitHub release.
type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// Result describes the outcome of a version check.
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

// CheckVersion asks GitHub for the latest release and compares it with
// the running version. It never returns an error: the check is
// best-effort and a network failure just means no update notice.
func CheckVersion(currentVersion string) *Result {
	result := &Result{CurrentVersion: normalize(currentVersion)}

	rel, err := fetchLatest(currentVersion)
	if err != nil {
		return result
	}

	result.LatestVersion = normalize(rel.TagName)
	result.ReleaseURL = rel.HTMLURL
	result.UpdateAvailable = isNewer(result.CurrentVersion, result.LatestVersion)
	return result
}

// SelfUpdate downloads the release asset for this OS/arch and replaces
// the running executable atomically.
func SelfUpdate(currentVersion string) error {
	rel, err := fetchLatest(currentVersion)
	if err != nil {
		return err
	}

	latest := normalize(rel.TagName)
	if !isNewer(normalize(currentVersion), latest) {
		return fmt.Errorf("already at latest version (%s)", currentVersion)
	}

	assetName := buildAssetName(latest)
	var downloadURL string
	for _, asset := range rel.Assets {
		if asset.Name == assetName {
			downloadURL = asset.BrowserDownloadURL
			break
		}
	}
	if downloadURL == "" {
		return fmt.Errorf("no release asset for %s/%s (looked for %s)", runtime.GOOS, runtime.GOARCH, assetName)
	}

	resp, err := http.Get(downloadURL) //nolint:gosec // URL comes from the GitHub API
	if err != nil {
		return fmt.Errorf("downloading release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned %d", resp.StatusCode)
	}

	binary, err := extractBinary(resp.Body, assetName)
	if err != nil {
		return fmt.Errorf("extracting binary: %w", err)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("finding current executable: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("resolving symlinks: %w", err)
	}

	tmpPath := execPath + ".new"
	if err := os.WriteFile(tmpPath, binary, 0o755); err != nil {
		return fmt.Errorf("writing new binary: %w", err)
	}

	// Windows cannot overwrite a running binary, so it is shuffled aside
	// first and the stale .old is cleaned up on the next update.
	if runtime.GOOS == "windows" {
		oldPath := execPath + ".old"
		_ = os.Remove(oldPath)
		if err := os.Rename(execPath, oldPath); err != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("backing up current binary: %w", err)
		}
	}

	if err := os.Rename(tmpPath, execPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing binary: %w", err)
	}

	return nil
}

// fetchLatest retrieves and decodes the latest release from GitHub.
func fetchLatest(currentVersion string) (*release, error) {
	req, err := http.NewRequest("GET", releaseEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "grove/"+currentVersion)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checking latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("parsing release info: %w", err)
	}
	return &rel, nil
}

// extractBinary pulls the grove binary out of a release archive.
// Windows releases ship as .zip, which needs random access we do not
// have on a streaming body; those users download manually for now.
func extractBinary(reader io.Reader, assetName string) ([]byte, error) {
	if strings.HasSuffix(assetName, ".zip") {
		return nil, fmt.Errorf("zip extraction not supported; download manually from GitHub releases")
	}

	gz, err := gzip.NewReader(reader)
	if err != nil {
		return nil, fmt.Errorf("opening gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar: %w", err)
		}

		name := filepath.Base(header.Name)
		if name == "grove" || name == "grove.exe" {
			data, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("reading binary from tar: %w", err)
			}
			return data, nil
		}
	}

	return nil, fmt.Errorf("grove binary not found in archive")
}

// buildAssetName matches GoReleaser's name_template for this OS/arch.
func buildAssetName(version string) string {
	ext := "tar.gz"
	if runtime.GOOS == "windows" {
		ext = "zip"
	}
	return fmt.Sprintf("grove_%s_%s_%s.%s", version, runtime.GOOS, runtime.GOARCH, ext)
}

// normalize strips the leading "v" from version strings.
func normalize(v string) string {
	return strings.TrimPrefix(v, "v")
}

// isNewer compares two dotted versions numerically, part by part.
// "dev" builds never see updates.
func isNewer(current, latest string) bool {
	if current == "" || latest == "" || current == "dev" {
		return false
	}

	currentParts := strings.SplitN(current, ".", 3)
	latestParts := strings.SplitN(latest, ".", 3)
	for len(currentParts) < 3 {
		currentParts = append(currentParts, "0")
	}
	for len(latestParts) < 3 {
		latestParts = append(latestParts, "0")
	}

	for i := 0; i < 3; i++ {
		c := leadingInt(currentParts[i])
		l := leadingInt(latestParts[i])
		if l != c {
			return l > c
		}
	}
	return false
}

// leadingInt parses the leading digits of s, ignoring any suffix
// (pre-release tags like "1-rc1" compare by their numeric prefix).
func leadingInt(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, _ := strconv.Atoi(s[:i])
	return n
}

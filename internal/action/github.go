package action

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/model"
)

// githubRelease is the subset of GitHub's release API response
// binary.github needs: https://docs.github.com/en/rest/releases/releases.
type githubRelease struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// planBinaryGithub resolves the named release's matching asset through
// GitHub's REST API, then composes a Download atom with an Unarchive (for
// archive assets) or a Copy (for a bare binary asset) to land it at To.
// No provider in the retrieved corpus wraps the GitHub release API, so
// this reaches for encoding/json and net/http directly, the same stdlib
// exception already taken for file.download and file.unarchive.
func (r *Resolver) planBinaryGithub(ctx context.Context, manifestName string, b *model.BinaryGithubBody) ([]model.Step, error) {
	release, err := fetchGithubRelease(ctx, b.Repo, b.Version)
	if err != nil {
		return nil, err
	}

	pattern := b.AssetPattern
	if pattern == "" {
		pattern = "*"
	}

	var assetURL, assetName string
	for _, a := range release.Assets {
		if matched, _ := path.Match(pattern, a.Name); matched {
			assetURL, assetName = a.BrowserDownloadURL, a.Name
			break
		}
	}
	if assetURL == "" {
		return nil, fmt.Errorf("action: no release asset in %s matching %q", b.Repo, pattern)
	}

	stagingPath := filepath.Join(filepath.Dir(b.To), ".manifesto-download-"+assetName)
	download := &atom.Download{ManifestName: manifestName, URL: assetURL, To: stagingPath}

	if isArchiveName(assetName) {
		return []model.Step{
			{Atom: download},
			{Atom: &atom.Unarchive{ManifestName: manifestName, From: stagingPath, To: b.To}},
		}, nil
	}
	return []model.Step{
		{Atom: download},
		{Atom: &atom.Copy{ManifestName: manifestName, From: stagingPath, To: b.To, Mode: 0o755}},
	}, nil
}

// githubAPIBase is overridden in tests to point at a local httptest server.
var githubAPIBase = "https://api.github.com"

func fetchGithubRelease(ctx context.Context, repo, version string) (*githubRelease, error) {
	url := githubAPIBase + "/repos/" + repo + "/releases/latest"
	if version != "" {
		url = githubAPIBase + "/repos/" + repo + "/releases/tags/" + version
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("action: github release lookup for %s: unexpected status %s", repo, resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("action: decoding github release response: %w", err)
	}
	return &release, nil
}

func isArchiveName(name string) bool {
	for _, suffix := range []string{".zip", ".tar.gz", ".tgz", ".tar"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/anisan-cli/anipahe/constant"
	"github.com/anisan-cli/anipahe/filesystem"
	"github.com/anisan-cli/anipahe/network"
	"github.com/anisan-cli/anipahe/util"
	"github.com/anisan-cli/anipahe/where"
	"github.com/metafates/gache"
)

// ReleasesURL is the GitHub endpoint describing the latest release.
var ReleasesURL = "https://api.github.com/repos/anisan-cli/" + constant.App + "/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest retrieves the most recent stable release version, cached for two days.
func Latest(ctx context.Context) (string, error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	ver, err = fetchLatest(ctx, network.Client)
	if err != nil {
		return "", err
	}

	_ = versionCacher.Set(ver)
	return ver, nil
}

func fetchLatest(ctx context.Context, client *http.Client) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}

	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: unexpected status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err = json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}

// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lhproto

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	// HTTPPathPrefix is the path under which pledge servers publish
	// projects.
	HTTPPathPrefix = "/_lighthouse/crowdfund"

	// HTTPProjectPath is appended to HTTPPathPrefix and followed by the
	// project ID.
	HTTPProjectPath = "/project/"

	// HTTPLocalTestPort is the port a local test pledge server listens on.
	HTTPLocalTestPort = 13765
)

var titleStripRegexp = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// MakeServerPath returns the URL at which the pledge server name publishes
// the project with the given ID.
func MakeServerPath(name, projectID string) string {
	return "https://" + name + HTTPPathPrefix + HTTPProjectPath + projectID
}

// ValidateServerPath checks that path is an https URL following the pledge
// server layout for projectID and returns its host.
func ValidateServerPath(path, projectID string) (string, error) {
	if path == "" {
		return "", NewError(ErrInvalidServerPath, "empty server path",
			nil)
	}

	u, err := url.Parse(path)
	if err != nil {
		return "", NewError(ErrInvalidServerPath,
			"cannot parse server path", err)
	}

	want := HTTPPathPrefix + HTTPProjectPath + projectID
	if u.Scheme != "https" || u.Path != want {
		str := fmt.Sprintf("server path %q does not match %q on https",
			path, want)
		return "", NewError(ErrInvalidServerPath, str, nil)
	}

	return u.Hostname(), nil
}

// TitleToURLString turns a project title into the form used in URLs: only
// ASCII letters, digits and dashes, lower cased.
func TitleToURLString(title string) string {
	s := titleStripRegexp.ReplaceAllString(title, "")
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

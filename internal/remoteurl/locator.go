// Package remoteurl parses Git remote URLs into a protocol-tagged locator
// and converts between the HTTPS and SSH forms of the same repository.
package remoteurl

import (
	"fmt"
	"net/url"
	"strings"
)

// Protocol identifies one of the two remote URL shapes understood here.
type Protocol string

const (
	ProtocolHTTPS Protocol = "https"
	ProtocolSSH   Protocol = "ssh"
)

// ParseProtocol validates a user-supplied protocol name.
func ParseProtocol(raw string) (Protocol, error) {
	switch Protocol(raw) {
	case ProtocolHTTPS, ProtocolSSH:
		return Protocol(raw), nil
	}
	return "", fmt.Errorf("unrecognized target protocol: %s", raw)
}

// Locator is the parsed identity of a remote repository URL. The concrete
// types are exactly HTTPS and SSH; callers switch over them exhaustively.
type Locator interface {
	// URL renders the locator back to a remote URL, always with a .git suffix.
	URL() string
	// RepoHost returns the repository host.
	RepoHost() string
	// RepoPath returns the repository path without the .git suffix.
	RepoPath() string
}

// HTTPS is a locator of the form https://<host>/<path>.git.
type HTTPS struct {
	Host string
	Path string
}

func (l HTTPS) URL() string      { return "https://" + l.Host + "/" + l.Path + ".git" }
func (l HTTPS) RepoHost() string { return l.Host }
func (l HTTPS) RepoPath() string { return l.Path }

// ToSSH converts to the SSH form, attaching the supplied username.
func (l HTTPS) ToSSH(user string) SSH {
	return SSH{User: user, Host: l.Host, Path: l.Path}
}

// SSH is a locator in Git's SCP-like syntax, <user>@<host>:<path>.git.
// It is not a true URI but Git calls it an URL all the same.
type SSH struct {
	User string
	Host string
	Path string
}

func (l SSH) URL() string      { return l.User + "@" + l.Host + ":" + l.Path + ".git" }
func (l SSH) RepoHost() string { return l.Host }
func (l SSH) RepoPath() string { return l.Path }

// ToHTTPS converts to the HTTPS form, dropping the username.
func (l SSH) ToHTTPS() HTTPS {
	return HTTPS{Host: l.Host, Path: l.Path}
}

// Parse recognizes exactly the two remote URL shapes produced by URL().
// A trailing .git suffix is stripped from the stored path.
func Parse(raw string) (Locator, error) {
	if strings.HasPrefix(raw, "https://") {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Hostname() == "" {
			return nil, fmt.Errorf("unsupported HTTPS remote URL format: %s", raw)
		}
		path := strings.TrimPrefix(parsed.Path, "/")
		path = strings.TrimSuffix(path, ".git")
		if path == "" {
			return nil, fmt.Errorf("unsupported HTTPS remote URL format: %s", raw)
		}
		return HTTPS{Host: parsed.Hostname(), Path: path}, nil
	}

	if strings.Contains(raw, "@") && strings.Contains(raw, ":") {
		left, path, _ := strings.Cut(raw, ":")
		user, host, ok := strings.Cut(left, "@")
		if !ok || user == "" || host == "" || path == "" {
			return nil, fmt.Errorf("cannot parse remote URL: %s", raw)
		}
		path = strings.TrimSuffix(path, ".git")
		return SSH{User: user, Host: host, Path: path}, nil
	}

	return nil, fmt.Errorf("cannot parse remote URL: %s", raw)
}

// Convert returns loc converted to the target protocol, or nil when loc
// already uses it. Callers use the nil result to skip no-op remote updates.
func Convert(loc Locator, target Protocol, sshUser string) (Locator, error) {
	switch target {
	case ProtocolHTTPS:
		switch l := loc.(type) {
		case HTTPS:
			return nil, nil
		case SSH:
			return l.ToHTTPS(), nil
		}
	case ProtocolSSH:
		switch l := loc.(type) {
		case SSH:
			return nil, nil
		case HTTPS:
			return l.ToSSH(sshUser), nil
		}
	default:
		return nil, fmt.Errorf("unrecognized target protocol: %s", target)
	}
	return nil, fmt.Errorf("unrecognized remote locator type: %T", loc)
}

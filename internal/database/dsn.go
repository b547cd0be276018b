package database

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/taskdb/taskdb/internal/config"
)

// DSN builds a postgres:// URL for the named database.
//
// The password is URL-escaped ("pa:ss@word" would otherwise break the
// URL) and IPv6 hosts get brackets from net.JoinHostPort.
func DSN(cfg config.DatabaseConfig, dbName string) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	userInfo := url.User(cfg.User)
	if cfg.Password != "" {
		userInfo = url.UserPassword(cfg.User, cfg.Password)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     hostPort,
		Path:     "/" + dbName,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(cfg.SSLMode)),
	}
	return u.String()
}

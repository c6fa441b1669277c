package retry

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/appgen/pkg/appgen"
)

var _ appgen.ErrorClassifier = (*DatabaseErrorClassifier)(nil)

// PostgreSQL SQLSTATE codes outside the always-transient classes.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeLockNotAvailable     = "55P03"
)

// transientClasses are SQLSTATE classes that are always worth retrying:
// 08 connection exception, 53 insufficient resources, 57 operator intervention.
var transientClasses = []string{"08", "53", "57"}

var transientMessages = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"server closed the connection",
	"the database system is starting up",
	"database is locked",
	"sqlite_busy",
}

// DatabaseErrorClassifier recognizes transient PostgreSQL, SQLite and network errors.
type DatabaseErrorClassifier struct{}

// NewDatabaseErrorClassifier creates a new classifier.
func NewDatabaseErrorClassifier() *DatabaseErrorClassifier {
	return &DatabaseErrorClassifier{}
}

// IsTransient reports whether err is temporary and the operation may succeed later.
func (c *DatabaseErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isTransientSQLState(pgErr.Code)
	}

	if isTransientNetError(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientMessages {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

func isTransientSQLState(code string) bool {
	for _, class := range transientClasses {
		if strings.HasPrefix(code, class) {
			return true
		}
	}
	switch code {
	case pgCodeSerializationFailure, pgCodeDeadlockDetected, pgCodeLockNotAvailable:
		return true
	}
	return false
}

func isTransientNetError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return true
		}
		return errors.Is(opErr.Err, syscall.ECONNREFUSED) ||
			errors.Is(opErr.Err, syscall.ECONNRESET) ||
			errors.Is(opErr.Err, syscall.ENETUNREACH) ||
			errors.Is(opErr.Err, syscall.EHOSTUNREACH)
	}
	return false
}
